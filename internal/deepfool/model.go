// Package deepfool implements the DeepFool perturbation search: for a
// trained multi-class classifier and one input, it finds an
// approximately minimal additive perturbation that flips the predicted
// label, by iteratively linearizing the per-class decision boundaries
// and stepping across the nearest one.
package deepfool

import (
	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/tensor"
)

// Model is the classifier surface the perturbation search drives. It
// is the only point where this package touches the classifier.
//
// Implementations need not be safe for concurrent use; the search is
// single-threaded and callers parallelizing across examples must
// verify their model's inference path themselves.
type Model interface {
	// Predict runs a plain forward pass over a batch and returns one
	// score row per example. No gradient tracking is required.
	Predict(batch []*tensor.Input) ([][]float64, error)

	// Scores runs the differentiable forward pass for a single example
	// on the given tape. The implementation must consume x's field
	// tensors directly as graph leaves: gradients are keyed by tensor
	// identity, so copying a field before the first tape operation
	// would disconnect it from the backward pass.
	//
	// The result must be a [1, numClasses] score row.
	Scores(tape *autodiff.Tape, x *tensor.Input) (*tensor.Tensor, error)
}
