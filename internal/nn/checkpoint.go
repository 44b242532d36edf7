package nn

import (
	"fmt"

	"github.com/foil-ml/foil/internal/persist"
	"github.com/foil-ml/foil/internal/tensor"
)

// checkpointTensor is the serialized form of one parameter tensor.
type checkpointTensor struct {
	Shape []int
	Data  []float64
}

// checkpointData is the gob payload for a classifier snapshot: the
// architecture plus a parameter state dict keyed by parameter name.
type checkpointData struct {
	Fields      []FieldSpec
	HiddenSizes []int
	NumClasses  int
	Params      map[string]checkpointTensor
}

// Save writes the classifier's architecture and weights to path
// through the given store.
func (c *Classifier) Save(store *persist.Store, path string) error {
	data := checkpointData{
		Fields:     c.fields,
		NumClasses: c.numClasses,
		Params:     make(map[string]checkpointTensor),
	}
	for _, l := range c.hidden {
		data.HiddenSizes = append(data.HiddenSizes, l.OutFeatures())
	}
	for _, p := range c.Parameters() {
		t := p.Tensor()
		data.Params[p.Name()] = checkpointTensor{
			Shape: append([]int(nil), t.Shape()...),
			Data:  append([]float64(nil), t.Data()...),
		}
	}
	return store.Save(path, &data)
}

// LoadClassifier reconstructs a classifier from a checkpoint written
// by Save. Weights are restored exactly; the seed used at construction
// is irrelevant since every parameter is overwritten.
func LoadClassifier(store *persist.Store, path string) (*Classifier, error) {
	var data checkpointData
	if err := store.Load(path, &data); err != nil {
		return nil, err
	}

	c, err := NewClassifier(data.Fields, data.HiddenSizes, data.NumClasses, 0)
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}
	for _, p := range c.Parameters() {
		saved, ok := data.Params[p.Name()]
		if !ok {
			return nil, fmt.Errorf("checkpoint %s: missing parameter %q", path, p.Name())
		}
		if !p.Tensor().Shape().Equal(tensor.Shape(saved.Shape)) {
			return nil, fmt.Errorf("checkpoint %s: parameter %q has shape %v, want %v",
				path, p.Name(), saved.Shape, p.Tensor().Shape())
		}
		copy(p.Tensor().Data(), saved.Data)
	}
	return c, nil
}
