package atlas

import (
	"github.com/matzehuels/spritekit/pkg/errors"
)

const (
	// DefaultColumns is the default number of tiles per atlas row.
	DefaultColumns = 10

	// DefaultTileSize is the default tile edge length in pixels.
	DefaultTileSize = 40

	// MaxCanvasSide bounds the atlas width and height in pixels.
	MaxCanvasSide = 1 << 15
)

// Layout is the grid geometry for a given number of images.
type Layout struct {
	Count    int // number of images placed
	Columns  int // tiles per row
	Rows     int // ceil(Count / Columns)
	TileSize int // tile edge length in pixels
	Width    int // Columns * TileSize
	Height   int // Rows * TileSize
}

// Cell is the grid slot of one image.
type Cell struct {
	Row int // zero-based row
	Col int // zero-based column
	X   int // left edge in pixels
	Y   int // top edge in pixels
}

// NewLayout computes the grid for count images.
func NewLayout(count, columns, tileSize int) (Layout, error) {
	if count < 1 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "no images to pack")
	}
	if err := errors.ValidatePositive("grid columns", columns); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidatePositive("tile size", tileSize); err != nil {
		return Layout{}, err
	}

	rows := (count + columns - 1) / columns
	if columns > MaxCanvasSide/tileSize || rows > MaxCanvasSide/tileSize {
		return Layout{}, errors.New(errors.ErrCodeInvalidGrid,
			"atlas of %dx%d tiles of %dpx exceeds %dpx per side", columns, rows, tileSize, MaxCanvasSide)
	}

	return Layout{
		Count:    count,
		Columns:  columns,
		Rows:     rows,
		TileSize: tileSize,
		Width:    columns * tileSize,
		Height:   rows * tileSize,
	}, nil
}

// Cell returns the slot for the image at index i.
func (l Layout) Cell(i int) Cell {
	row, col := i/l.Columns, i%l.Columns
	return Cell{
		Row: row,
		Col: col,
		X:   col * l.TileSize,
		Y:   row * l.TileSize,
	}
}
