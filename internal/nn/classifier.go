package nn

import (
	"fmt"
	"math/rand"

	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/tensor"
)

// FieldSpec declares one named input field and its per-example shape
// (no batch dimension).
type FieldSpec struct {
	Name  string
	Shape tensor.Shape
}

// Classifier is a feed-forward multi-class classifier over a
// multi-field input. Each field is flattened to a row vector, the rows
// are concatenated, and the result flows through hidden Linear+ReLU
// layers into a linear head producing one score per class.
//
// Classifier satisfies the model interface the perturbation search
// consumes: Predict for plain inference and Scores for the
// differentiable forward pass.
type Classifier struct {
	fields     []FieldSpec
	hidden     []*Linear
	head       *Linear
	numClasses int
}

// NewClassifier builds a classifier for the given field layout, hidden
// layer widths, and class count. The same seed always yields the same
// weights.
func NewClassifier(fields []FieldSpec, hiddenSizes []int, numClasses int, seed int64) (*Classifier, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("classifier requires at least one input field")
	}
	if numClasses < 2 {
		return nil, fmt.Errorf("classifier requires at least 2 classes, got %d", numClasses)
	}
	total := 0
	for i, f := range fields {
		if err := f.Shape.Validate(); err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, f.Name, err)
		}
		total += f.Shape.NumElements()
	}

	rng := rand.New(rand.NewSource(seed))
	c := &Classifier{
		fields:     append([]FieldSpec(nil), fields...),
		numClasses: numClasses,
	}
	width := total
	for i, h := range hiddenSizes {
		if h <= 0 {
			return nil, fmt.Errorf("hidden layer %d has invalid width %d", i, h)
		}
		c.hidden = append(c.hidden, NewLinear(fmt.Sprintf("hidden.%d", i), width, h, rng))
		width = h
	}
	c.head = NewLinear("head", width, numClasses, rng)
	return c, nil
}

// NumClasses returns the classifier's output width.
func (c *Classifier) NumClasses() int {
	return c.numClasses
}

// Fields returns the expected input field layout.
func (c *Classifier) Fields() []FieldSpec {
	return c.fields
}

// Parameters returns all trainable parameters in a stable order.
func (c *Classifier) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range c.hidden {
		params = append(params, l.Parameters()...)
	}
	params = append(params, c.head.Parameters()...)
	return params
}

// Scores runs the differentiable forward pass for a single example on
// the given tape. The input's field tensors are consumed directly as
// graph leaves, so a backward pass from the returned scores yields
// gradients for them.
//
// The result has shape [1, numClasses].
func (c *Classifier) Scores(tape *autodiff.Tape, x *tensor.Input) (*tensor.Tensor, error) {
	if err := c.checkStructure(x); err != nil {
		return nil, err
	}

	rows := make([]*tensor.Tensor, x.NumFields())
	for i := 0; i < x.NumFields(); i++ {
		field := x.Field(i).Tensor
		rows[i] = tape.Reshape(field, tensor.Shape{1, field.NumElements()})
	}
	h := tape.Concat(rows...)
	for _, l := range c.hidden {
		h = tape.ReLU(l.Forward(tape, h))
	}
	return c.head.Forward(tape, h), nil
}

// Predict runs a plain forward pass over a batch and returns one score
// row per example. No gradient state is retained.
func (c *Classifier) Predict(batch []*tensor.Input) ([][]float64, error) {
	rows := make([][]float64, len(batch))
	for i, x := range batch {
		out, err := c.Scores(autodiff.NewTape(), x)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		rows[i] = append([]float64(nil), out.Data()...)
	}
	return rows, nil
}

func (c *Classifier) checkStructure(x *tensor.Input) error {
	if x.NumFields() != len(c.fields) {
		return fmt.Errorf("expected %d input fields, got %d", len(c.fields), x.NumFields())
	}
	for i, spec := range c.fields {
		got := x.Field(i).Tensor.Shape()
		if !got.Equal(spec.Shape) {
			return fmt.Errorf("field %d (%q): expected shape %v, got %v", i, spec.Name, spec.Shape, got)
		}
	}
	return nil
}
