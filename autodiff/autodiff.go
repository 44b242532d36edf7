// Copyright 2025 The Foil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// It implements reverse-mode automatic differentiation using a
// gradient tape: operations executed through a Tape are recorded
// during the forward pass, and Backward walks them in reverse to
// accumulate per-tensor gradients.
//
// Example:
//
//	tape := autodiff.NewTape()
//	tape.StartRecording()
//	y := tape.MatMul(x, w)
//	grads := tape.Backward(y, seed)
//	gradX := grads[x]
package autodiff

import (
	"github.com/foil-ml/foil/internal/autodiff"
)

// Tape records operations for automatic differentiation and computes
// gradients via backpropagation.
type Tape = autodiff.Tape

// NewTape creates a new gradient tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}
