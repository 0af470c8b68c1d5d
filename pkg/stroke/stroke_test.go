package stroke

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

const sampleDoc = `{
  "zeta": [
    {"strokes": [[{"x": 0.1, "y": 0.2}, {"x": 0.9, "y": 0.8}]]},
    {"strokes": [[{"x": 0.5, "y": 0.5}], []], "id": "ignored"}
  ],
  "alpha": [
    {"strokes": []}
  ],
  "mid": []
}`

func TestReadJSON(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if got, want := ds.Labels(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v (document order)", got, want)
	}
	if ds.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ds.Len())
	}
	if ds.SampleCount() != 3 {
		t.Errorf("SampleCount() = %d, want 3", ds.SampleCount())
	}

	zeta := ds.Samples("zeta")
	want := Sample{Strokes: []Stroke{{{X: 0.1, Y: 0.2}, {X: 0.9, Y: 0.8}}}}
	if !reflect.DeepEqual(zeta[0], want) {
		t.Errorf("Samples(zeta)[0] = %+v, want %+v", zeta[0], want)
	}
	if len(zeta[1].Strokes) != 2 || len(zeta[1].Strokes[1]) != 0 {
		t.Errorf("Samples(zeta)[1] = %+v, want one point stroke and one empty stroke", zeta[1])
	}
	if len(ds.Samples("mid")) != 0 {
		t.Errorf("Samples(mid) = %v, want empty", ds.Samples("mid"))
	}
}

func TestReadJSONDuplicateLabelAppends(t *testing.T) {
	doc := `{"a": [{"strokes": []}], "b": [], "a": [{"strokes": []}]}`
	ds, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got := len(ds.Samples("a")); got != 2 {
		t.Errorf("len(Samples(a)) = %d, want 2", got)
	}
	if got, want := ds.Labels(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code serrors.Code
	}{
		{"empty input", "", serrors.ErrCodeInvalidFormat},
		{"array", `[]`, serrors.ErrCodeInvalidFormat},
		{"truncated", `{"a": [`, serrors.ErrCodeInvalidFormat},
		{"bad sample", `{"a": [{"strokes": "nope"}]}`, serrors.ErrCodeInvalidFormat},
		{"bad point", `{"a": [{"strokes": [[{"x": "1"}]]}]}`, serrors.ErrCodeInvalidFormat},
		{"unterminated", `{"a": []`, serrors.ErrCodeInvalidFormat},
		{"traversal label", `{"..": []}`, serrors.ErrCodeInvalidInput},
		{"slash label", `{"a/b": []}`, serrors.ErrCodeInvalidInput},
		{"empty label", `{"": []}`, serrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("ReadJSON() expected error")
			}
			if !serrors.Is(err, tt.code) {
				t.Errorf("ReadJSON() code = %v, want %v (err: %v)", serrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestReadJSONFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadJSONFile(filepath.Join(dir, "missing.json")); !serrors.Is(err, serrors.ErrCodeFileNotFound) {
		t.Errorf("ReadJSONFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(dir, "training_data.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}
	ds, err := ReadJSONFile(path)
	if err != nil {
		t.Fatalf("ReadJSONFile() error: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ds.Len())
	}
}

func TestWriteJSONRoundTripKeepsOrder(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, ds); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON()) error: %v", err)
	}
	if !reflect.DeepEqual(back.Labels(), ds.Labels()) {
		t.Errorf("labels = %v, want %v", back.Labels(), ds.Labels())
	}
	for _, label := range ds.Labels() {
		if len(back.Samples(label)) != len(ds.Samples(label)) {
			t.Errorf("label %q: %d samples, want %d", label, len(back.Samples(label)), len(ds.Samples(label)))
		}
	}
}

func TestDatasetAdd(t *testing.T) {
	ds := NewDataset()
	if err := ds.Add("b", Sample{}); err != nil {
		t.Fatal(err)
	}
	if err := ds.Add("a"); err != nil {
		t.Fatal(err)
	}
	if err := ds.Add("b", Sample{}, Sample{}); err != nil {
		t.Fatal(err)
	}
	if err := ds.Add("x/y"); err == nil {
		t.Error("Add(x/y) expected error")
	}

	if got, want := ds.Labels(), []string{"b", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if got := len(ds.Samples("b")); got != 3 {
		t.Errorf("len(Samples(b)) = %d, want 3", got)
	}

	labels := ds.Labels()
	labels[0] = "mutated"
	if ds.Labels()[0] != "b" {
		t.Error("Labels() should return a copy")
	}
}

func TestDatasetStats(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}

	st := ds.Stats()
	if st.Samples != 3 || st.Strokes != 3 || st.Points != 3 || st.Empty != 1 {
		t.Errorf("Stats() = %+v, want samples=3 strokes=3 points=3 empty=1", st)
	}
	if len(st.Labels) != 3 || st.Labels[0].Label != "zeta" || st.Labels[0].Samples != 2 {
		t.Errorf("Stats().Labels = %+v", st.Labels)
	}
}

func TestSampleEmpty(t *testing.T) {
	tests := []struct {
		name string
		s    Sample
		want bool
	}{
		{"no strokes", Sample{}, true},
		{"empty strokes", Sample{Strokes: []Stroke{{}, {}}}, true},
		{"one point", Sample{Strokes: []Stroke{{}, {{X: 0, Y: 0}}}}, false},
	}
	for _, tt := range tests {
		if got := tt.s.Empty(); got != tt.want {
			t.Errorf("%s: Empty() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
