package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training_data.json")
	doc := `{"alpha": [{"strokes": [[{"x": 0, "y": 0}, {"x": 1, "y": 1}]]}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	src := New(path)
	if src.Name() != "file:"+path {
		t.Errorf("Name() = %q", src.Name())
	}

	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ds.Len() != 1 || len(ds.Samples("alpha")) != 1 {
		t.Errorf("dataset = %d labels, %d alpha samples", ds.Len(), len(ds.Samples("alpha")))
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	if !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New("unused.json").Load(ctx); err == nil {
		t.Error("Load() expected context error")
	}
}
