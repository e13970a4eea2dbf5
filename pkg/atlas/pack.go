package atlas

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/matzehuels/spritekit/pkg/errors"
)

// NamedImage is one source image and the name it is listed under.
type NamedImage struct {
	Name  string
	Image image.Image
}

// Options configures [Pack].
type Options struct {
	Columns  int  // tiles per row
	TileSize int  // tile edge length in pixels
	Fit      bool // downscale images larger than a tile instead of failing
}

// DefaultOptions returns the standard 10 column grid of 40px tiles.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns, TileSize: DefaultTileSize}
}

// Pack composites images onto a single canvas and returns it with the
// manifest describing each image's tile, in input order.
//
// It fails with INVALID_INPUT when images is empty, INVALID_GRID when the grid
// parameters are not positive, INVALID_IMAGE for nil or empty images and
// OVERSIZED_IMAGE when an image exceeds the tile and opts.Fit is false.
func Pack(images []NamedImage, opts Options) (*image.RGBA, Manifest, error) {
	l, err := NewLayout(len(images), opts.Columns, opts.TileSize)
	if err != nil {
		return nil, nil, err
	}

	srcs := make([]image.Image, len(images))
	for i, ni := range images {
		src, err := prepare(ni, opts)
		if err != nil {
			return nil, nil, err
		}
		srcs[i] = src
	}

	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	manifest := make(Manifest, 0, len(images))

	for i, src := range srcs {
		cell := l.Cell(i)
		composite(canvas, src, cell, l.TileSize)
		manifest = append(manifest, Entry{
			Name:   images[i].Name,
			X:      cell.X,
			Y:      cell.Y,
			Width:  l.TileSize,
			Height: l.TileSize,
		})
	}

	return canvas, manifest, nil
}

// prepare checks one image against the tile and scales it down if allowed.
func prepare(ni NamedImage, opts Options) (image.Image, error) {
	if ni.Image == nil {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image %q is nil", ni.Name)
	}
	b := ni.Image.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidImage, "image %q is empty", ni.Name)
	}
	if b.Dx() <= opts.TileSize && b.Dy() <= opts.TileSize {
		return ni.Image, nil
	}
	if !opts.Fit {
		return nil, errors.New(errors.ErrCodeOversizedImage,
			"image %q is %dx%d, larger than the %dpx tile", ni.Name, b.Dx(), b.Dy(), opts.TileSize)
	}
	return fit(ni.Image, opts.TileSize), nil
}

// fit scales src uniformly so that both sides are at most size.
func fit(src image.Image, size int) image.Image {
	b := src.Bounds()
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := max(1, min(size, int(math.Round(float64(b.Dx())*scale))))
	h := max(1, min(size, int(math.Round(float64(b.Dy())*scale))))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// composite draws src centered in cell, blending over what is already there.
func composite(canvas *image.RGBA, src image.Image, cell Cell, tileSize int) {
	b := src.Bounds()
	at := image.Pt(
		cell.X+(tileSize-b.Dx())/2,
		cell.Y+(tileSize-b.Dy())/2,
	)
	draw.Draw(canvas, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Over)
}
