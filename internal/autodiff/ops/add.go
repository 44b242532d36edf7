package ops

import (
	"fmt"

	"github.com/foil-ml/foil/internal/tensor"
)

// AddOp represents element-wise addition: output = a + b.
//
// Two layouts are supported:
//   - a and b share a shape (plain element-wise add), or
//   - a is [m, n] and b is [n] (row-broadcast bias add).
//
// In the broadcast case the gradient for b is the column-wise sum of
// the output gradient, collapsing the broadcast rows back to [n].
type AddOp struct {
	inputs []*tensor.Tensor // [a, b]
	output *tensor.Tensor   // a + b
}

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.Tensor) *AddOp {
	return &AddOp{
		inputs: []*tensor.Tensor{a, b},
		output: output,
	}
}

// AddForward computes a + b, supporting the row-broadcast bias layout.
func AddForward(a, b *tensor.Tensor) *tensor.Tensor {
	if a.Shape().Equal(b.Shape()) {
		return a.Add(b)
	}
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) == 2 && len(bShape) == 1 && aShape[1] == bShape[0] {
		m, n := aShape[0], aShape[1]
		out := tensor.Zeros(tensor.Shape{m, n})
		aData, bData, outData := a.Data(), b.Data(), out.Data()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				outData[i*n+j] = aData[i*n+j] + bData[j]
			}
		}
		return out
	}
	panic(fmt.Sprintf("Add: incompatible shapes %v and %v", aShape, bShape))
}

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.Tensor) []*tensor.Tensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := outputGrad.Clone()

	if a.Shape().Equal(b.Shape()) {
		return []*tensor.Tensor{gradA, outputGrad.Clone()}
	}

	// Broadcast case: collapse rows of the output gradient into b's shape.
	m, n := a.Shape()[0], a.Shape()[1]
	gradB := tensor.Zeros(b.Shape())
	gData, gbData := outputGrad.Data(), gradB.Data()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			gbData[j] += gData[i*n+j]
		}
	}
	return []*tensor.Tensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *AddOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns the output tensor a + b.
func (op *AddOp) Output() *tensor.Tensor {
	return op.output
}
