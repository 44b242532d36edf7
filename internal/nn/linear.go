// Package nn provides the reference feed-forward classifier used for
// robustness evaluation: Linear layers over a flattened multi-field
// input, with Xavier initialization and gob checkpointing.
package nn

import (
	"fmt"
	"math/rand"

	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]
}

// NewLinear creates a new Linear layer with Xavier-initialized weights
// and zero biases. The name prefixes the layer's parameter names.
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	bias := tensor.Zeros(tensor.Shape{outFeatures})
	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter(name+".weight", weight),
		bias:        NewParameter(name+".bias", bias),
	}
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// Parameters returns the layer's parameters.
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Forward computes y = x @ W.T + b on the given tape.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(tape *autodiff.Tape, x *tensor.Tensor) *tensor.Tensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	wT := tape.Transpose(l.weight.Tensor()) // [in_features, out_features]
	y := tape.MatMul(x, wT)                 // [batch_size, out_features]
	return tape.Add(y, l.bias.Tensor())
}
