package pipeline

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/matzehuels/spritekit/pkg/atlas"
	"github.com/matzehuels/spritekit/pkg/errors"
)

// WriteFiles writes base.png and base.<format>, creating the parent
// directory if needed, and returns both paths.
func (r *AtlasResult) WriteFiles(base, format string) (string, string, error) {
	if err := errors.ValidateOutputBase(base); err != nil {
		return "", "", err
	}
	if err := atlas.ValidateFormat(format); err != nil {
		return "", "", err
	}

	var manifest bytes.Buffer
	if err := r.Manifest.Write(&manifest, format); err != nil {
		return "", "", errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}

	pngPath := base + ".png"
	manifestPath := base + "." + format
	if err := writeFile(pngPath, r.PNG); err != nil {
		return "", "", err
	}
	if err := writeFile(manifestPath, manifest.Bytes()); err != nil {
		return "", "", err
	}
	return pngPath, manifestPath, nil
}

// WriteFile writes the generated source to path.
func (r *EnumResult) WriteFile(path string) error {
	if err := errors.ValidateOutputBase(path); err != nil {
		return err
	}
	return writeFile(path, []byte(r.Source))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
