package atlas

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/spritekit/pkg/errors"
)

// Manifest formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ValidFormats is the set of supported manifest formats.
var ValidFormats = map[string]bool{
	FormatCSV:  true,
	FormatJSON: true,
}

// csvHeader is the first manifest row. The frontend skips it by position.
var csvHeader = []string{"name", "x", "y", "width", "height"}

// Entry locates one image's tile within the atlas.
type Entry struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Manifest lists atlas entries in packing order.
type Manifest []Entry

// ValidateFormat checks that a manifest format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid manifest format: %q (must be one of: csv, json)", format)
	}
	return nil
}

// Write encodes m in the given format.
func (m Manifest) Write(w io.Writer, format string) error {
	switch format {
	case FormatCSV:
		return m.WriteCSV(w)
	case FormatJSON:
		return m.WriteJSON(w)
	default:
		return ValidateFormat(format)
	}
}

// WriteCSV writes the header row followed by one row per entry.
func (m Manifest) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range m {
		row := []string{
			e.Name,
			strconv.Itoa(e.X),
			strconv.Itoa(e.Y),
			strconv.Itoa(e.Width),
			strconv.Itoa(e.Height),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the entries as an indented JSON array.
func (m Manifest) WriteJSON(w io.Writer) error {
	if m == nil {
		m = Manifest{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// ReadCSV parses a manifest written by [Manifest.WriteCSV].
func ReadCSV(r io.Reader) (Manifest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest is empty")
	}
	for i, col := range csvHeader {
		if records[0][i] != col {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "unexpected header %v", records[0])
		}
	}

	m := make(Manifest, 0, len(records)-1)
	for line, rec := range records[1:] {
		var nums [4]int
		for i := range nums {
			n, err := strconv.Atoi(rec[i+1])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "line %d: %s", line+2, csvHeader[i+1])
			}
			nums[i] = n
		}
		m = append(m, Entry{Name: rec[0], X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]})
	}
	return m, nil
}

// ReadJSON parses a manifest written by [Manifest.WriteJSON].
func ReadJSON(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// ReadManifest parses a manifest in the given format.
func ReadManifest(r io.Reader, format string) (Manifest, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, ValidateFormat(format)
	}
}

// FormatFromPath infers the manifest format from a file extension.
func FormatFromPath(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// Filter returns the entries whose name contains substr, ignoring case.
func (m Manifest) Filter(substr string) Manifest {
	if substr == "" {
		return m
	}
	substr = strings.ToLower(substr)
	var out Manifest
	for _, e := range m {
		if strings.Contains(strings.ToLower(e.Name), substr) {
			out = append(out, e)
		}
	}
	return out
}

// Bounds returns the smallest canvas size that contains every entry.
func (m Manifest) Bounds() (width, height int) {
	for _, e := range m {
		width = max(width, e.X+e.Width)
		height = max(height, e.Y+e.Height)
	}
	return width, height
}

// Lookup returns the entry with the given name.
func (m Manifest) Lookup(name string) (Entry, bool) {
	for _, e := range m {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// String formats the entry as "name x,y wxh".
func (e Entry) String() string {
	return fmt.Sprintf("%s %d,%d %dx%d", e.Name, e.X, e.Y, e.Width, e.Height)
}
