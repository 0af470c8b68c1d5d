// Package file loads stroke samples from a local JSON document.
package file

import (
	"context"

	"github.com/matzehuels/strokeset/pkg/stroke"
)

// Source reads a dataset document as described by [stroke.ReadJSON].
type Source struct {
	Path string
}

// New returns a source reading the document at path.
func New(path string) *Source {
	return &Source{Path: path}
}

// Name returns the document path.
func (s *Source) Name() string {
	return "file:" + s.Path
}

// Load reads and decodes the document.
func (s *Source) Load(ctx context.Context) (*stroke.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return stroke.ReadJSONFile(s.Path)
}
