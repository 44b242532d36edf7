// Package eval aggregates per-example robustness ratios into per-fold
// and cross-fold means. Folds come from cross-validation: each carries
// its own trained model and held-out examples.
package eval

import (
	"github.com/foil-ml/foil/internal/deepfool"
	"github.com/foil-ml/foil/internal/tensor"
)

// Fold is one cross-validation partition: a trained model and the
// held-out examples it is evaluated on.
type Fold struct {
	Name     string
	Model    deepfool.Model
	Examples []*tensor.Input
}

// FoldReport summarizes one fold's evaluation.
type FoldReport struct {
	Fold string

	// Ratios holds one robustness ratio per example, in example order.
	Ratios []float64

	// MeanRatio is the arithmetic mean of Ratios.
	MeanRatio float64

	// NonConverged counts examples whose search exhausted the
	// iteration budget without flipping the label.
	NonConverged int

	// FromCache is true when Ratios was loaded from a previous run
	// instead of recomputed.
	FromCache bool
}

// Report summarizes a full evaluation run across folds.
type Report struct {
	RunID string
	Folds []FoldReport

	// MeanRatio is the mean of the per-fold means.
	MeanRatio float64
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
