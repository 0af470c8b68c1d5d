// Package stroke defines the labeled pen-stroke samples that strokeset turns
// into raster images.
//
// A [Sample] is one handwritten instance of a symbol: an ordered list of
// [Stroke]s, each an ordered list of [Point]s with coordinates normalized to
// [0, 1]. Samples are grouped by label in a [Dataset], which remembers the
// order in which labels were first seen so that image numbering is stable
// across runs.
package stroke

// Point is a single pen position. Coordinates are normalized to [0, 1];
// values outside that range are kept and clipped when rasterized.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Stroke is one continuous pen motion.
type Stroke []Point

// Sample is one labeled drawing of a symbol.
type Sample struct {
	Strokes []Stroke `json:"strokes" bson:"strokes"`
}

// Empty reports whether the sample would render to a blank image.
func (s Sample) Empty() bool {
	for _, st := range s.Strokes {
		if len(st) > 0 {
			return false
		}
	}
	return true
}

// PointCount returns the number of points across all strokes.
func (s Sample) PointCount() int {
	n := 0
	for _, st := range s.Strokes {
		n += len(st)
	}
	return n
}
