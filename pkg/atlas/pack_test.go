package atlas

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/spritekit/pkg/errors"
)

// solid returns a w x h image filled with c.
func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func namedSolids(n, size int) []NamedImage {
	images := make([]NamedImage, n)
	for i := range images {
		images[i] = NamedImage{
			Name:  fmt.Sprintf("icon%02d", i),
			Image: solid(size, size, color.RGBA{R: uint8(i * 10), G: 200, B: 50, A: 255}),
		}
	}
	return images
}

func TestPackScenario(t *testing.T) {
	canvas, manifest, err := Pack(namedSolids(12, 40), DefaultOptions())
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	if b := canvas.Bounds(); b.Dx() != 400 || b.Dy() != 80 {
		t.Errorf("canvas = %dx%d, want 400x80", b.Dx(), b.Dy())
	}
	if len(manifest) != 12 {
		t.Fatalf("manifest has %d rows, want 12", len(manifest))
	}

	want := Entry{Name: "icon10", X: 0, Y: 40, Width: 40, Height: 40}
	if manifest[10] != want {
		t.Errorf("manifest[10] = %+v, want %+v", manifest[10], want)
	}
}

func TestPackManifestPositions(t *testing.T) {
	for _, cols := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("cols=%d", cols), func(t *testing.T) {
			images := namedSolids(13, 8)
			canvas, manifest, err := Pack(images, Options{Columns: cols, TileSize: 16})
			if err != nil {
				t.Fatal(err)
			}

			rows := (13 + cols - 1) / cols
			if b := canvas.Bounds(); b.Dx() != cols*16 || b.Dy() != rows*16 {
				t.Errorf("canvas = %dx%d, want %dx%d", b.Dx(), b.Dy(), cols*16, rows*16)
			}
			for i, e := range manifest {
				if e.Name != images[i].Name {
					t.Errorf("row %d name = %q, want %q", i, e.Name, images[i].Name)
				}
				if e.X != (i%cols)*16 || e.Y != (i/cols)*16 {
					t.Errorf("row %d at (%d,%d)", i, e.X, e.Y)
				}
				if e.Width != 16 || e.Height != 16 {
					t.Errorf("row %d size %dx%d, want full tile", i, e.Width, e.Height)
				}
			}
		})
	}
}

func TestPackCentersImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	images := []NamedImage{
		{Name: "a", Image: solid(10, 10, red)},
		{Name: "b", Image: solid(20, 4, red)},
	}

	canvas, _, err := Pack(images, Options{Columns: 2, TileSize: 20})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{4, 4, color.RGBA{}},   // left of first image
		{5, 5, red},            // first image top-left
		{14, 14, red},          // first image bottom-right
		{15, 15, color.RGBA{}}, // past first image
		{20, 7, color.RGBA{}},  // above second image
		{20, 8, red},           // second image, offset (0, 8)
		{39, 11, red},
		{39, 12, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := canvas.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPackKeepsTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 128})

	canvas, _, err := Pack([]NamedImage{{Name: "half", Image: img}}, Options{Columns: 1, TileSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got := canvas.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("transparent pixel alpha = %d, want 0", got.A)
	}
	if got := canvas.RGBAAt(1, 1); got.A != 128 || got.G == 0 {
		t.Errorf("translucent pixel = %v, want alpha 128 green", got)
	}
}

func TestPackNonZeroOrigin(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	sub := solid(20, 20, red).SubImage(image.Rect(10, 10, 14, 14))

	canvas, _, err := Pack([]NamedImage{{Name: "sub", Image: sub}}, Options{Columns: 1, TileSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	if got := canvas.RGBAAt(2, 2); got != red {
		t.Errorf("pixel (2,2) = %v, want red", got)
	}
	if got := canvas.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("pixel (1,1) = %v, want transparent", got)
	}
}

func TestPackErrors(t *testing.T) {
	tests := []struct {
		name     string
		images   []NamedImage
		opts     Options
		wantCode errors.Code
	}{
		{"empty", nil, DefaultOptions(), errors.ErrCodeInvalidInput},
		{"empty with bad grid", nil, Options{}, errors.ErrCodeInvalidInput},
		{"zero columns", namedSolids(1, 4), Options{Columns: 0, TileSize: 4}, errors.ErrCodeInvalidGrid},
		{"zero tile", namedSolids(1, 4), Options{Columns: 1, TileSize: 0}, errors.ErrCodeInvalidGrid},
		{"nil image", []NamedImage{{Name: "x"}}, DefaultOptions(), errors.ErrCodeInvalidImage},
		{"empty image", []NamedImage{{Name: "x", Image: image.NewRGBA(image.Rectangle{})}}, DefaultOptions(), errors.ErrCodeInvalidImage},
		{"oversized", namedSolids(1, 41), DefaultOptions(), errors.ErrCodeOversizedImage},
		{"too wide", []NamedImage{{Name: "x", Image: solid(41, 2, color.RGBA{A: 255})}}, DefaultOptions(), errors.ErrCodeOversizedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, manifest, err := Pack(tt.images, tt.opts)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Pack() error = %v, want code %s", err, tt.wantCode)
			}
			if canvas != nil || manifest != nil {
				t.Error("Pack() returned output alongside an error")
			}
		})
	}
}

func TestPackFit(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	images := []NamedImage{
		{Name: "wide", Image: solid(80, 40, blue)},
		{Name: "small", Image: solid(10, 10, blue)},
	}

	canvas, manifest, err := Pack(images, Options{Columns: 2, TileSize: 20, Fit: true})
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}

	// 80x40 scales to 20x10 and is centered vertically: rows 5..14.
	if got := canvas.RGBAAt(10, 4); got.A != 0 {
		t.Errorf("pixel above scaled image alpha = %d, want 0", got.A)
	}
	if got := canvas.RGBAAt(10, 10); got.B == 0 || got.A == 0 {
		t.Errorf("pixel inside scaled image = %v, want blue", got)
	}
	if got := canvas.RGBAAt(10, 15); got.A != 0 {
		t.Errorf("pixel below scaled image alpha = %d, want 0", got.A)
	}
	if manifest[0].Width != 20 || manifest[0].Height != 20 {
		t.Errorf("manifest[0] = %+v, want full tile", manifest[0])
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, size   int
		wantW, wantH int
	}{
		{80, 40, 20, 20, 10},
		{40, 80, 20, 10, 20},
		{100, 100, 40, 40, 40},
		{1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		got := fit(solid(tt.w, tt.h, color.RGBA{A: 255}), tt.size).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("fit(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.size, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}
