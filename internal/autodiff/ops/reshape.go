package ops

import "github.com/foil-ml/foil/internal/tensor"

// ReshapeOp represents a shape change with preserved element count.
//
// Reshape must be recorded on the tape: without it, gradients computed
// for the reshaped tensor would never reach the original leaf.
type ReshapeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.Tensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward reshapes the output gradient back to the input's shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad.Reshape(op.input.Shape())}
}

// Inputs returns the input tensor.
func (op *ReshapeOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.Tensor {
	return op.output
}
