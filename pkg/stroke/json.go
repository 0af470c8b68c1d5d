package stroke

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

// ReadJSON decodes a dataset document from r.
//
// The input must be a single JSON object mapping label to a list of samples:
//
//	{
//	  "alpha": [
//	    {"strokes": [[{"x": 0.1, "y": 0.2}, {"x": 0.8, "y": 0.9}]]}
//	  ]
//	}
//
// Labels keep their document order, which fixes the numbering of the images
// written later. Unknown fields are ignored. A label that appears twice has
// its samples appended.
//
// ReadJSON returns an INVALID_FORMAT error for malformed JSON and an
// INVALID_INPUT error for labels that cannot be used as directory names.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "dataset must be a JSON object, got %v", tok)
	}

	ds := NewDataset()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode label")
		}
		label, _ := tok.(string)

		var samples []Sample
		if err := dec.Decode(&samples); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode samples of %q", label)
		}
		if err := ds.Add(label, samples...); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	return ds, nil
}

// ReadJSONFile opens the file at path, decodes it with [ReadJSON] and closes it.
// A missing file is reported as FILE_NOT_FOUND.
func ReadJSONFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes ds in the format read by [ReadJSON], preserving label order.
func WriteJSON(w io.Writer, ds *Dataset) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, label := range ds.labels {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		key, err := json.Marshal(label)
		if err != nil {
			return err
		}
		samples := ds.samples[label]
		if samples == nil {
			samples = []Sample{}
		}
		val, err := json.Marshal(samples)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(append(key, ':'), val...)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
