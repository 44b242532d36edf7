package nn

import "github.com/foil-ml/foil/internal/tensor"

// Parameter is a named tensor belonging to a layer. Names are used as
// checkpoint keys, so they must be unique within a model.
type Parameter struct {
	name   string
	tensor *tensor.Tensor
}

// NewParameter creates a named parameter wrapping the given tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the underlying tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}
