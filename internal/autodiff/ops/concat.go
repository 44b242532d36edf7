package ops

import (
	"fmt"

	"github.com/foil-ml/foil/internal/tensor"
)

// ConcatOp concatenates row vectors [1, n_i] along the feature
// dimension into a single [1, sum(n_i)] row.
//
// Backward pass: the output gradient is split back into per-input
// slices by the recorded widths.
type ConcatOp struct {
	inputs []*tensor.Tensor
	output *tensor.Tensor
	widths []int
}

// NewConcatOp creates a new ConcatOp.
func NewConcatOp(inputs []*tensor.Tensor, output *tensor.Tensor, widths []int) *ConcatOp {
	return &ConcatOp{inputs: inputs, output: output, widths: widths}
}

// ConcatForward concatenates [1, n_i] rows into one [1, total] row and
// returns the result together with the per-input widths.
func ConcatForward(inputs []*tensor.Tensor) (*tensor.Tensor, []int) {
	total := 0
	widths := make([]int, len(inputs))
	for i, in := range inputs {
		shape := in.Shape()
		if len(shape) != 2 || shape[0] != 1 {
			panic(fmt.Sprintf("Concat: expected [1, n] row vectors, got %v", shape))
		}
		widths[i] = shape[1]
		total += shape[1]
	}
	out := tensor.Zeros(tensor.Shape{1, total})
	outData := out.Data()
	offset := 0
	for _, in := range inputs {
		copy(outData[offset:offset+in.NumElements()], in.Data())
		offset += in.NumElements()
	}
	return out, widths
}

// Backward splits the output gradient into per-input gradients.
func (op *ConcatOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	grads := make([]*tensor.Tensor, len(op.inputs))
	gData := outputGrad.Data()
	offset := 0
	for i, w := range op.widths {
		grad := tensor.Zeros(tensor.Shape{1, w})
		copy(grad.Data(), gData[offset:offset+w])
		grads[i] = grad
		offset += w
	}
	return grads
}

// Inputs returns the concatenated input tensors.
func (op *ConcatOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns the concatenated row.
func (op *ConcatOp) Output() *tensor.Tensor {
	return op.output
}
