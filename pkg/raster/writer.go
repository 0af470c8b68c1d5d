package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// ImageDir returns the directory holding the rendered images of the given size.
func ImageDir(root string, size int) string {
	return filepath.Join(root, fmt.Sprintf("images%d", size))
}

// ImagePath returns the path of the index-th image, filed under label.
func ImagePath(root string, size int, label string, index int) string {
	return filepath.Join(ImageDir(root, size), label, fmt.Sprintf("%d.png", index))
}

// Stats reports what a [Writer] did.
type Stats struct {
	Total   int // samples visited
	Created int // images written
	Skipped int // images already present
	Blank   int // written images without any ink
}

// Writer renders a dataset to images<N>/<label>/<index>.png under Root.
//
// Images are numbered by a single counter running across all labels in
// dataset order, so the same dataset always maps to the same file names.
// An image whose path already exists is left untouched, which makes a re-run
// after an interruption only fill in the missing files.
type Writer struct {
	Root   string
	Size   int
	Logger *log.Logger
}

// NewWriter creates a writer rooted at root. If logger is nil, log.Default()
// is used.
func NewWriter(root string, size int, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{Root: root, Size: size, Logger: logger}
}

// WriteAll renders every sample of ds. It stops at the first error; images
// written before that point stay on disk.
func (w *Writer) WriteAll(ctx context.Context, ds *stroke.Dataset) (Stats, error) {
	var st Stats
	if w.Size < 1 {
		return st, serrors.New(serrors.ErrCodeConfig, "image size must be positive, got %d", w.Size)
	}

	if err := os.MkdirAll(ImageDir(w.Root, w.Size), 0755); err != nil {
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "create %s", ImageDir(w.Root, w.Size))
	}

	counter := 0
	for _, label := range ds.Labels() {
		dir := filepath.Join(ImageDir(w.Root, w.Size), label)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return st, serrors.Wrap(serrors.ErrCodeIO, err, "create %s", dir)
		}

		for _, sample := range ds.Samples(label) {
			if err := ctx.Err(); err != nil {
				return st, err
			}
			path := ImagePath(w.Root, w.Size, label, counter)
			counter++
			st.Total++

			if _, err := os.Stat(path); err == nil {
				w.Logger.Info("image already exists", "path", path)
				st.Skipped++
				continue
			} else if !errors.Is(err, fs.ErrNotExist) {
				return st, serrors.Wrap(serrors.ErrCodeIO, err, "stat %s", path)
			}

			img := Rasterize(sample, w.Size)
			if InkCount(img) == 0 {
				w.Logger.Debug("blank image", "path", path)
				st.Blank++
			}
			if err := writePNG(path, img); err != nil {
				return st, err
			}
			st.Created++
		}
	}
	return st, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "create %s", path)
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		return serrors.Wrap(serrors.ErrCodeIO, err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
