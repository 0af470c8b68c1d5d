// Package split partitions rendered images into train, validation and test sets.
//
// Assignment is driven by a seeded generator, so the same image tree and seed
// always produce the same partition. Before the stochastic rule is applied,
// every label is guaranteed at least one image in each split: while a label's
// directory in some split is still empty, the current image is copied there
// as well. The first image of a label therefore usually lands in all three
// splits.
package split

import (
	"fmt"
	"path/filepath"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

// Name identifies one of the output partitions.
type Name string

// The three partitions, in the order their coverage is checked.
const (
	Train Name = "train"
	Val   Name = "val"
	Test  Name = "test"
)

// Names lists all partitions in coverage order.
var Names = []Name{Train, Val, Test}

// DefaultSeed is the generator seed used when none is configured.
const DefaultSeed = uint64(0)

// Ratios holds the share of images assigned to train and val; test receives
// the remainder.
type Ratios struct {
	Train float64
	Val   float64
}

// DefaultRatios is the 70/20/10 partition.
var DefaultRatios = Ratios{Train: 0.7, Val: 0.2}

// Test returns the share of images assigned to test.
func (r Ratios) Test() float64 {
	return 1 - r.Train - r.Val
}

// Validate checks that both shares lie in [0, 1] and leave a non-negative
// remainder for test.
func (r Ratios) Validate() error {
	if err := serrors.ValidateRatio("train", r.Train); err != nil {
		return err
	}
	if err := serrors.ValidateRatio("val", r.Val); err != nil {
		return err
	}
	if r.Train+r.Val > 1 {
		return serrors.New(serrors.ErrCodeConfig, "train+val ratios exceed 1: %v+%v", r.Train, r.Val)
	}
	return nil
}

// String formats the ratios as percentages, e.g. "70/20/10".
func (r Ratios) String() string {
	return fmt.Sprintf("%.0f/%.0f/%.0f", r.Train*100, r.Val*100, r.Test()*100)
}

// Assign maps a draw p in [0, 1) to a partition: p < Train goes to train,
// p < Train+Val to val, everything else to test.
func Assign(p float64, r Ratios) Name {
	switch {
	case p < r.Train:
		return Train
	case p < r.Train+r.Val:
		return Val
	default:
		return Test
	}
}

// DataDir returns the directory holding the split copies for images of the
// given size.
func DataDir(root string, size int) string {
	return filepath.Join(root, fmt.Sprintf("images_data%d", size))
}
