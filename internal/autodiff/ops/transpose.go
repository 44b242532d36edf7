package ops

import "github.com/foil-ml/foil/internal/tensor"

// TransposeOp represents a 2D transpose.
//
// Even though transpose is conceptually a view, the forward pass
// produces a new tensor, so the operation must be recorded for
// gradients to flow back to the original.
type TransposeOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.Tensor) *TransposeOp {
	return &TransposeOp{input: input, output: output}
}

// Backward transposes the output gradient back.
func (op *TransposeOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	return []*tensor.Tensor{outputGrad.Transpose()}
}

// Inputs returns the input tensor.
func (op *TransposeOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.Tensor {
	return op.output
}
