// Package atlas packs many small images into one sprite atlas.
//
// # Overview
//
// Images are placed on a fixed grid of square tiles in the order they are
// given, row by row. Each image is centered in its tile and composited
// source-over onto a transparent RGBA canvas. The resulting [Manifest] maps
// every image name to the bounds of its tile.
//
//	canvas, manifest, err := atlas.Pack(images, atlas.Options{Columns: 10, TileSize: 40})
//	if err != nil {
//	    return err
//	}
//	err = png.Encode(f, canvas)
//	err = manifest.WriteCSV(csvFile)
//
// # Layout
//
// [NewLayout] exposes the grid arithmetic on its own. For the image at index i:
//
//	row = i / Columns, col = i % Columns
//	x   = col * TileSize, y = row * TileSize
//
// The canvas is Columns*TileSize wide and ceil(n/Columns)*TileSize tall.
//
// # Oversized Images
//
// An image larger than a tile would spill into its neighbors. [Pack] rejects
// it with an OVERSIZED_IMAGE error unless [Options.Fit] is set, in which case
// it is downscaled with Catmull-Rom resampling to fit the tile.
package atlas
