// Package ops defines operation interfaces and implementations for
// automatic differentiation.
//
// Each operation implements the Operation interface: the forward pass
// is computed by the tape, and Backward computes input gradients given
// the output gradient.
//
// Supported operations:
//   - AddOp: element-wise addition with row-broadcast bias support
//   - MatMulOp: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - ReLUOp: rectified linear unit (d(ReLU(x))/dx = 1 if x > 0, else 0)
//   - ConcatOp: row-vector concatenation (backward splits the gradient)
//   - ReshapeOp: shape change (backward reshapes the gradient back)
//   - TransposeOp: 2D transpose (backward transposes the gradient back)
package ops

import "github.com/foil-ml/foil/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.Tensor) []*tensor.Tensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}
