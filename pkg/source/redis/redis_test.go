package redis

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// encodeHash is the inverse of DecodeHash.
func encodeHash(t *testing.T, ds *stroke.Dataset) map[string]string {
	t.Helper()
	fields := make(map[string]string, ds.Len())
	for _, label := range ds.Labels() {
		data, err := json.Marshal(ds.Samples(label))
		if err != nil {
			t.Fatal(err)
		}
		fields[label] = string(data)
	}
	return fields
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid", "redis://localhost:6379/2", false},
		{"with password", "redis://:secret@cache:6380/0", false},
		{"empty", "", true},
		{"bad scheme", "http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.url, "strokeset:samples", nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !serrors.Is(err, serrors.ErrCodeConfig) {
				t.Errorf("New(%q) code = %v, want CONFIG", tt.url, serrors.GetCode(err))
			}
		})
	}
}

func TestName(t *testing.T) {
	src, err := New("redis://:secret@cache:6380/3", "samples", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := src.Name(), "redis:cache:6380/3/samples"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestDecodeHash(t *testing.T) {
	fields := map[string]string{
		"zeta":  `[{"strokes": [[{"x": 0.5, "y": 0.5}]]}]`,
		"alpha": `[{"strokes": []}, {"strokes": [[]]}]`,
		"mid":   `[]`,
	}

	ds, err := DecodeHash(fields)
	if err != nil {
		t.Fatalf("DecodeHash() error: %v", err)
	}
	if got, want := ds.Labels(), []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if got := len(ds.Samples("alpha")); got != 2 {
		t.Errorf("len(Samples(alpha)) = %d, want 2", got)
	}

	back, err := DecodeHash(encodeHash(t, ds))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Samples("zeta"), ds.Samples("zeta")) {
		t.Errorf("round trip changed zeta: %+v", back.Samples("zeta"))
	}
}

func TestDecodeHashErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		code   serrors.Code
	}{
		{"bad json", map[string]string{"a": `{`}, serrors.ErrCodeInvalidFormat},
		{"bad label", map[string]string{"../x": `[]`}, serrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHash(tt.fields)
			if !serrors.Is(err, tt.code) {
				t.Errorf("DecodeHash() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestLoadUnreachable(t *testing.T) {
	src, err := New("redis://127.0.0.1:1/0?dial_timeout=200ms", "samples", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = src.Load(context.Background())
	if !serrors.Is(err, serrors.ErrCodeConnection) {
		t.Errorf("Load() error = %v, want CONNECTION", err)
	}
}
