package ops

import "github.com/foil-ml/foil/internal/tensor"

// ReLUOp represents the rectified linear unit: output = max(0, x).
//
// Backward pass: the gradient passes through where the input was
// positive and is zeroed elsewhere.
type ReLUOp struct {
	input  *tensor.Tensor
	output *tensor.Tensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.Tensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// ReLUForward computes max(0, x) element-wise.
func ReLUForward(x *tensor.Tensor) *tensor.Tensor {
	out := tensor.Zeros(x.Shape())
	xData, outData := x.Data(), out.Data()
	for i, v := range xData {
		if v > 0 {
			outData[i] = v
		}
	}
	return out
}

// Backward masks the output gradient by the input's sign.
func (op *ReLUOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	grad := tensor.Zeros(op.input.Shape())
	xData, gData, gradData := op.input.Data(), outputGrad.Data(), grad.Data()
	for i, v := range xData {
		if v > 0 {
			gradData[i] = gData[i]
		}
	}
	return []*tensor.Tensor{grad}
}

// Inputs returns the input tensor.
func (op *ReLUOp) Inputs() []*tensor.Tensor {
	return []*tensor.Tensor{op.input}
}

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.Tensor {
	return op.output
}
