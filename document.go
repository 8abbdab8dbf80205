// Package polymon converts Polymon JSON documents, holding a flattened
// 3x64x64 pixel array, into raster image files.
package polymon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/polymon/polymon-go/image"
)

// Document is a parsed Polymon JSON document.
type Document struct {
	// Image is the raw value of the "image" field.
	Image json.RawMessage `json:"image"`
}

// ReadDocument reads and parses the JSON document at path.
// A missing file results in ErrInputNotFound, invalid JSON or a missing
// "image" field in ErrMalformedDocument.
func ReadDocument(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %v", path, err)
	}
	return ParseDocument(buf)
}

// ParseDocument parses a JSON document from buf.
func ParseDocument(buf []byte) (*Document, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	raw, ok := fields["image"]
	if !ok {
		return nil, fmt.Errorf("%w: missing field \"image\"", ErrMalformedDocument)
	}
	return &Document{Image: raw}, nil
}

// Pixels returns the flattened values of the "image" field, in document
// order. The field must be a rectangular, possibly nested, array of integers.
// If the number of values is not image.Len, ErrShapeMismatch is returned.
func (d *Document) Pixels() ([]int64, error) {
	dec := json.NewDecoder(bytes.NewReader(d.Image))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: field \"image\": %v", ErrMalformedDocument, err)
	}
	if _, ok := v.([]interface{}); !ok {
		return nil, fmt.Errorf("%w: field \"image\" is not an array", ErrMalformedDocument)
	}

	f := flattener{values: make([]int64, 0, image.Len)}
	if err := f.flatten(v, 0); err != nil {
		return nil, fmt.Errorf("%w: field \"image\": %v", ErrMalformedDocument, err)
	}
	if len(f.values) != image.Len {
		return nil, fmt.Errorf("%w: got %d values (shape %v), expected %d (%dx%dx%d)", ErrShapeMismatch, len(f.values), f.shape, image.Len, image.Channels, image.Width, image.Height)
	}
	return f.values, nil
}

// flattener collects leaf values of nested arrays, checking that all arrays
// at the same depth have the same length, and that numbers only occur at the
// innermost depth.
type flattener struct {
	shape  []int
	sealed bool // Set once the first number is seen, shape can no longer grow.
	values []int64
}

func (f *flattener) flatten(v interface{}, depth int) error {
	switch x := v.(type) {
	case []interface{}:
		if depth == len(f.shape) {
			if f.sealed {
				return fmt.Errorf("unexpected array at depth %d", depth)
			}
			f.shape = append(f.shape, len(x))
		} else if f.shape[depth] != len(x) {
			return fmt.Errorf("ragged array at depth %d, got length %d, expected %d", depth, len(x), f.shape[depth])
		}
		for _, e := range x {
			if err := f.flatten(e, depth+1); err != nil {
				return err
			}
		}
		return nil
	case json.Number:
		if depth != len(f.shape) {
			return fmt.Errorf("unexpected number at depth %d", depth)
		}
		f.sealed = true
		i, err := parseInt(x)
		if err != nil {
			return err
		}
		f.values = append(f.values, i)
		return nil
	default:
		return fmt.Errorf("unexpected value %v (%T), expected number or array", v, v)
	}
}

// parseInt parses n as integer. Integral floats like "10.0" or "1e2" are
// accepted.
func parseInt(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	fl, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("parsing number %q: %v", n, err)
	}
	if fl != math.Trunc(fl) || fl < math.MinInt64 || fl >= math.MaxInt64 {
		return 0, fmt.Errorf("number %s is not an integer", n)
	}
	return int64(fl), nil
}
