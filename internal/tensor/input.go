package tensor

import (
	"fmt"
	"math"
)

// Field is one named component of a composite model input.
type Field struct {
	Name   string
	Tensor *Tensor
}

// Input is an ordered collection of named tensor fields: the single
// example a multi-input classifier consumes. Perturbations and
// gradients carry the exact same field structure, so field-wise
// arithmetic and the joint norm are defined here rather than ad hoc
// at call sites.
type Input struct {
	fields []Field
}

// NewInput creates an Input from ordered fields. Field order is part
// of the value's identity and is preserved everywhere.
func NewInput(fields ...Field) (*Input, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("input requires at least one field")
	}
	for i, f := range fields {
		if f.Tensor == nil {
			return nil, fmt.Errorf("field %d (%q) has nil tensor", i, f.Name)
		}
	}
	in := &Input{fields: make([]Field, len(fields))}
	copy(in.fields, fields)
	return in, nil
}

// NumFields returns the number of fields.
func (in *Input) NumFields() int {
	return len(in.fields)
}

// Field returns the i-th field.
func (in *Input) Field(i int) Field {
	return in.fields[i]
}

// StructureEqual reports whether other has the same field count and
// per-field shapes.
func (in *Input) StructureEqual(other *Input) bool {
	if len(in.fields) != len(other.fields) {
		return false
	}
	for i := range in.fields {
		if !in.fields[i].Tensor.Shape().Equal(other.fields[i].Tensor.Shape()) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the input.
func (in *Input) Clone() *Input {
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		out.fields[i] = Field{Name: f.Name, Tensor: f.Tensor.Clone()}
	}
	return out
}

// ZerosLike returns an all-zero input with identical field structure.
func (in *Input) ZerosLike() *Input {
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		out.fields[i] = Field{Name: f.Name, Tensor: Zeros(f.Tensor.Shape())}
	}
	return out
}

// Add performs field-wise addition, returning a new input.
func (in *Input) Add(other *Input) *Input {
	in.mustMatch(other, "Add")
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		out.fields[i] = Field{Name: f.Name, Tensor: f.Tensor.Add(other.fields[i].Tensor)}
	}
	return out
}

// AddScaled returns in + s*other field-wise as a new input.
func (in *Input) AddScaled(other *Input, s float64) *Input {
	in.mustMatch(other, "AddScaled")
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		scaled := other.fields[i].Tensor.Scale(s)
		out.fields[i] = Field{Name: f.Name, Tensor: f.Tensor.Add(scaled)}
	}
	return out
}

// Sub performs field-wise subtraction, returning a new input.
func (in *Input) Sub(other *Input) *Input {
	in.mustMatch(other, "Sub")
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		out.fields[i] = Field{Name: f.Name, Tensor: f.Tensor.Sub(other.fields[i].Tensor)}
	}
	return out
}

// Scale multiplies every field by s, returning a new input.
func (in *Input) Scale(s float64) *Input {
	out := &Input{fields: make([]Field, len(in.fields))}
	for i, f := range in.fields {
		out.fields[i] = Field{Name: f.Name, Tensor: f.Tensor.Scale(s)}
	}
	return out
}

// Norm returns the joint Euclidean norm over the flattened union of
// every field, treating the multi-field input as one vector.
func (in *Input) Norm() float64 {
	var sum float64
	for _, f := range in.fields {
		for _, v := range f.Tensor.Data() {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

func (in *Input) mustMatch(other *Input, op string) {
	if !in.StructureEqual(other) {
		panic(fmt.Sprintf("%s: input field structures differ", op))
	}
}
