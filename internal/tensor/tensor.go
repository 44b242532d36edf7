// Package tensor implements the dense numeric values that flow through
// the perturbation search: plain float64 tensors and the multi-field
// Input composite that models take as their single example.
//
// All arithmetic returns fresh tensors; nothing mutates its receiver.
// This matters for the autodiff tape, which identifies graph nodes by
// tensor pointer identity.
package tensor

import (
	"fmt"
	"math"
)

// Tensor is a dense float64 tensor with row-major layout.
type Tensor struct {
	shape Shape
	data  []float64
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns a slice view of the tensor's data.
// The slice directly accesses the underlying memory (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	c := Zeros(t.shape)
	copy(c.data, t.data)
	return c
}

// Add performs element-wise addition, returning a new tensor.
func (t *Tensor) Add(other *Tensor) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("Add: shape mismatch %v vs %v", t.shape, other.shape))
	}
	out := Zeros(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] + other.data[i]
	}
	return out
}

// Sub performs element-wise subtraction, returning a new tensor.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("Sub: shape mismatch %v vs %v", t.shape, other.shape))
	}
	out := Zeros(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] - other.data[i]
	}
	return out
}

// Scale multiplies every element by s, returning a new tensor.
func (t *Tensor) Scale(s float64) *Tensor {
	out := Zeros(t.shape)
	for i := range t.data {
		out.data[i] = t.data[i] * s
	}
	return out
}

// Norm returns the Euclidean norm over all elements.
func (t *Tensor) Norm() float64 {
	var sum float64
	for _, v := range t.data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MatMul performs 2D matrix multiplication: out = t @ other.
//
// t must be [m, k] and other [k, n]; the result is [m, n].
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("MatMul: expected 2D tensors, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("MatMul: inner dimensions differ: %v @ %v", t.shape, other.shape))
	}
	out := Zeros(Shape{m, n})
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			a := t.data[i*k+l]
			if a == 0 {
				continue
			}
			row := other.data[l*n : (l+1)*n]
			outRow := out.data[i*n : (i+1)*n]
			for j := 0; j < n; j++ {
				outRow[j] += a * row[j]
			}
		}
	}
	return out
}

// Transpose returns the 2D transpose of the tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Transpose: expected 2D tensor, got %v", t.shape))
	}
	m, n := t.shape[0], t.shape[1]
	out := Zeros(Shape{n, m})
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			out.data[j*m+i] = t.data[i*n+j]
		}
	}
	return out
}

// Reshape returns a new tensor with the given shape and copied data.
// The element count must be preserved.
func (t *Tensor) Reshape(shape Shape) *Tensor {
	if shape.NumElements() != len(t.data) {
		panic(fmt.Sprintf("Reshape: cannot reshape %v to %v", t.shape, shape))
	}
	out := Zeros(shape)
	copy(out.data, t.data)
	return out
}

// Argmax returns the index of the largest value in scores.
// Ties break to the lowest index, so the result is stable across runs.
func Argmax(scores []float64) int {
	if len(scores) == 0 {
		panic("Argmax: empty score vector")
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
