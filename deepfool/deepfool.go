// Copyright 2025 The Foil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package deepfool provides the public API for the DeepFool
// perturbation search: computing an approximately minimal adversarial
// perturbation for one input of a trained multi-class classifier, and
// the robustness ratio derived from it.
//
// Example:
//
//	res, err := deepfool.DeepFool(model, x0, 0.02, 50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ratio := deepfool.Robustness(x0, res.Perturbation)
package deepfool

import (
	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/deepfool"
	"github.com/foil-ml/foil/internal/tensor"
)

// Stabilizer is the fixed additive term keeping boundary-distance and
// step-size denominators finite near zero gradient differences.
const Stabilizer = deepfool.Stabilizer

// Model is the classifier surface the search drives: a plain batched
// forward pass plus a differentiable single-example forward pass.
type Model = deepfool.Model

// Result is the outcome of one perturbation search: the aggregate
// perturbation, the iteration count, and the final predicted label.
type Result = deepfool.Result

// DeepFool searches for an approximately minimal perturbation of x0
// that flips the model's predicted label, stopping on a label change
// or after maxIter iterations. Each iteration steps across the nearest
// linearized class boundary, overshooting by a factor of (1 + eta).
// x0 is never mutated.
func DeepFool(m Model, x0 *tensor.Input, eta float64, maxIter int) (*Result, error) {
	return deepfool.DeepFool(m, x0, eta, maxIter)
}

// GradientAndScores returns the gradient of the class-th score with
// respect to x together with the full score vector from the same
// forward pass.
func GradientAndScores(m Model, x *tensor.Input, class int) (*tensor.Input, []float64, error) {
	return deepfool.GradientAndScores(m, x, class)
}

// Robustness returns ‖r‖/‖x‖ using the joint Euclidean norm over all
// fields. x must have nonzero norm.
func Robustness(x, r *tensor.Input) float64 {
	return deepfool.Robustness(x, r)
}

// NewTape creates a gradient tape, re-exported for model
// implementations that want to drive Scores directly.
func NewTape() *autodiff.Tape {
	return autodiff.NewTape()
}
