// Package autodiff implements reverse-mode automatic differentiation
// using a gradient tape.
//
// The Tape records operations during the forward pass and walks them
// in reverse during Backward, accumulating gradients per tensor. Graph
// nodes are identified by tensor pointer identity, so forward code
// must thread the exact tensors it wants gradients for (the leaves)
// through tape operations.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	tape.StartRecording()
//	y := tape.MatMul(x, w)
//	grads := tape.Backward(y, seed)
//	gradX := grads[x]
package autodiff

import (
	"fmt"

	"github.com/foil-ml/foil/internal/autodiff/ops"
	"github.com/foil-ml/foil/internal/tensor"
)

// Tape records operations during the forward pass and computes
// gradients during the backward pass.
type Tape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
}

// NewTape creates a new gradient tape.
func NewTape() *Tape {
	return &Tape{
		operations: make([]ops.Operation, 0, 64), // Pre-allocate for common case
		recording:  false,
	}
}

// StartRecording enables operation recording.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *Tape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *Tape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *Tape) NumOps() int {
	return len(t.operations)
}

// MatMul performs matrix multiplication and records the operation.
func (t *Tape) MatMul(a, b *tensor.Tensor) *tensor.Tensor {
	result := a.MatMul(b)
	if t.recording {
		t.Record(ops.NewMatMulOp(a, b, result))
	}
	return result
}

// Add performs element-wise (or row-broadcast bias) addition and
// records the operation.
func (t *Tape) Add(a, b *tensor.Tensor) *tensor.Tensor {
	result := ops.AddForward(a, b)
	if t.recording {
		t.Record(ops.NewAddOp(a, b, result))
	}
	return result
}

// ReLU applies ReLU activation and records the operation.
func (t *Tape) ReLU(x *tensor.Tensor) *tensor.Tensor {
	result := ops.ReLUForward(x)
	if t.recording {
		t.Record(ops.NewReLUOp(x, result))
	}
	return result
}

// Concat concatenates [1, n] row vectors along the feature dimension
// and records the operation.
func (t *Tape) Concat(xs ...*tensor.Tensor) *tensor.Tensor {
	result, widths := ops.ConcatForward(xs)
	if t.recording {
		inputs := make([]*tensor.Tensor, len(xs))
		copy(inputs, xs)
		t.Record(ops.NewConcatOp(inputs, result, widths))
	}
	return result
}

// Reshape reshapes a tensor and records the operation.
func (t *Tape) Reshape(x *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	result := x.Reshape(shape)
	if t.recording {
		t.Record(ops.NewReshapeOp(x, result))
	}
	return result
}

// Transpose transposes a 2D tensor and records the operation.
func (t *Tape) Transpose(x *tensor.Tensor) *tensor.Tensor {
	result := x.Transpose()
	if t.recording {
		t.Record(ops.NewTransposeOp(x, result))
	}
	return result
}

// Backward computes gradients for all tensors reachable from output by
// walking the tape in reverse.
//
// Algorithm:
//  1. Seed the output tensor with the given gradient
//  2. Walk operations in reverse order
//  3. For each operation, compute input gradients via the chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// Returns a map from tensor to its accumulated gradient. The seed must
// match the output's shape.
func (t *Tape) Backward(output, seed *tensor.Tensor) map[*tensor.Tensor]*tensor.Tensor {
	if !output.Shape().Equal(seed.Shape()) {
		panic(fmt.Sprintf("Backward: seed shape %v does not match output shape %v", seed.Shape(), output.Shape()))
	}

	grads := make(map[*tensor.Tensor]*tensor.Tensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Stop recording during backward pass so gradient arithmetic is
	// not itself recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	grads[output] = seed

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		inputGrads := op.Backward(outputGrad)
		inputs := op.Inputs()
		for j, input := range inputs {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = existing.Add(inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}
