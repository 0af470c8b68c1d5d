package stroke

import (
	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

// Dataset maps labels to their samples, keeping labels in first-seen order.
//
// A Dataset is built once by a loader and then only read. It is not safe for
// concurrent mutation.
type Dataset struct {
	labels  []string
	samples map[string][]Sample
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{samples: make(map[string][]Sample)}
}

// Add appends samples to label, registering the label on first use.
// It returns an INVALID_INPUT error if the label cannot be used as a
// directory name.
func (d *Dataset) Add(label string, samples ...Sample) error {
	if err := serrors.ValidateLabel(label); err != nil {
		return err
	}
	if _, ok := d.samples[label]; !ok {
		d.labels = append(d.labels, label)
		d.samples[label] = nil
	}
	d.samples[label] = append(d.samples[label], samples...)
	return nil
}

// Labels returns the labels in first-seen order.
func (d *Dataset) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// Samples returns the samples stored under label.
func (d *Dataset) Samples(label string) []Sample {
	return d.samples[label]
}

// Len returns the number of labels.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// SampleCount returns the number of samples across all labels.
func (d *Dataset) SampleCount() int {
	n := 0
	for _, s := range d.samples {
		n += len(s)
	}
	return n
}

// LabelStats summarizes the samples of one label.
type LabelStats struct {
	Label   string
	Samples int
	Strokes int
	Points  int
	Empty   int // samples without a single point
}

// Stats summarizes the whole dataset.
type Stats struct {
	Labels  []LabelStats
	Samples int
	Strokes int
	Points  int
	Empty   int
}

// Stats computes per-label and total counts, in label order.
func (d *Dataset) Stats() Stats {
	var st Stats
	for _, label := range d.labels {
		ls := LabelStats{Label: label}
		for _, s := range d.samples[label] {
			ls.Samples++
			ls.Strokes += len(s.Strokes)
			ls.Points += s.PointCount()
			if s.Empty() {
				ls.Empty++
			}
		}
		st.Labels = append(st.Labels, ls)
		st.Samples += ls.Samples
		st.Strokes += ls.Strokes
		st.Points += ls.Points
		st.Empty += ls.Empty
	}
	return st
}
