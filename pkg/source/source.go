// Package source finds and loads the icon images in a directory.
//
// Only regular files with a .png extension (any case) directly inside the
// directory are considered. Files are returned sorted by file name so atlas
// placement and enum order are reproducible across machines.
package source

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/errors"
)

// NoImagesMessage is reported when a directory has nothing to pack.
const NoImagesMessage = "No PNG files found in the directory."

// File is one discovered image file.
type File struct {
	Name string // file name without extension, e.g. "angle"
	Path string // full path
	Data []byte // raw file contents, set by Load
}

// Discover lists the PNG files in dir without reading them. Files whose
// absolute path is in exclude are skipped, so generated atlases written into
// dir are never packed again. It returns an INVALID_INPUT error carrying
// [NoImagesMessage] when there are none, and DUPLICATE_IMAGE when two files
// share a name, such as a.png and a.PNG.
func Discover(dir string, exclude ...string) ([]File, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "directory not found: %s", dir)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}

	skip, err := absSet(exclude)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !strings.EqualFold(ext, ".png") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if abs, err := filepath.Abs(path); err == nil && skip[abs] {
			continue
		}
		files = append(files, File{
			Name: strings.TrimSuffix(e.Name(), ext),
			Path: path,
		})
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, NoImagesMessage)
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	for i := 1; i < len(files); i++ {
		if files[i].Name == files[i-1].Name {
			return nil, errors.New(errors.ErrCodeDuplicateImage,
				"%s and %s have the same name %q", files[i-1].Path, files[i].Path, files[i].Name)
		}
	}
	return files, nil
}

func absSet(paths []string) (map[string]bool, error) {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", p)
		}
		set[abs] = true
	}
	return set, nil
}

// Load discovers the PNG files in dir and reads their contents.
func Load(ctx context.Context, dir string, exclude ...string) ([]File, error) {
	files, err := Discover(dir, exclude...)
	if err != nil {
		return nil, err
	}
	for i := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(files[i].Path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", files[i].Path)
		}
		files[i].Data = data
	}
	return files, nil
}

// Decode decodes every loaded file into a named image, preserving order.
func Decode(ctx context.Context, files []File) ([]atlas.NamedImage, error) {
	images := make([]atlas.NamedImage, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := decodePNG(f)
		if err != nil {
			return nil, err
		}
		images = append(images, atlas.NamedImage{Name: f.Name, Image: img})
	}
	return images, nil
}

func decodePNG(f File) (image.Image, error) {
	data := f.Data
	if data == nil {
		var err error
		if data, err = os.ReadFile(f.Path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", f.Path)
		}
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", f.Path)
	}
	return img, nil
}

// Names returns the file names in order.
func Names(files []File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
