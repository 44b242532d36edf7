// Copyright 2025 The Foil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the numeric values the
// Foil toolkit operates on: dense float64 tensors and the multi-field
// Input composite that classifiers take as a single example.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2})
//	in, _ := tensor.NewInput(tensor.Field{Name: "features", Tensor: x})
//	fmt.Println(in.Norm()) // 5
package tensor

import (
	"github.com/foil-ml/foil/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense float64 tensor with row-major layout.
type Tensor = tensor.Tensor

// Field is one named component of a composite model input.
type Field = tensor.Field

// Input is an ordered collection of named tensor fields with a defined
// joint Euclidean norm. Inputs, perturbations, and gradients all share
// one field structure.
type Input = tensor.Input

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor from a Go slice.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// NewInput creates an Input from ordered fields.
func NewInput(fields ...Field) (*Input, error) {
	return tensor.NewInput(fields...)
}

// Argmax returns the index of the largest score, breaking ties toward
// the lowest index.
func Argmax(scores []float64) int {
	return tensor.Argmax(scores)
}
