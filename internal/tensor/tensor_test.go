package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assert.True(t, x.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, 6, x.NumElements())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, x.Data())
}

func TestFromSlice_ShapeMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
}

func TestFromSlice_InvalidShape(t *testing.T) {
	_, err := FromSlice([]float64{}, Shape{0})
	require.Error(t, err)
}

func TestClone_Independent(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2}, Shape{2})
	y := x.Clone()
	y.Data()[0] = 99

	if x.Data()[0] != 1 {
		t.Errorf("Clone should not share memory: x[0] = %f, want 1", x.Data()[0])
	}
}

func TestArithmetic(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3}, Shape{3})
	b, _ := FromSlice([]float64{4, 5, 6}, Shape{3})

	assert.Equal(t, []float64{5, 7, 9}, a.Add(b).Data())
	assert.Equal(t, []float64{-3, -3, -3}, a.Sub(b).Data())
	assert.Equal(t, []float64{2, 4, 6}, a.Scale(2).Data())

	// Operands untouched.
	assert.Equal(t, []float64{1, 2, 3}, a.Data())
	assert.Equal(t, []float64{4, 5, 6}, b.Data())
}

func TestAdd_ShapeMismatchPanics(t *testing.T) {
	a := Zeros(Shape{2})
	b := Zeros(Shape{3})
	assert.Panics(t, func() { a.Add(b) })
}

func TestNorm(t *testing.T) {
	x, _ := FromSlice([]float64{3, 4}, Shape{2})
	assert.InDelta(t, 5.0, x.Norm(), 1e-12)
	assert.InDelta(t, 0.0, Zeros(Shape{4}).Norm(), 1e-12)
}

func TestMatMul(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{5, 6, 7, 8}, Shape{2, 2})

	c := a.MatMul(b)
	assert.True(t, c.Shape().Equal(Shape{2, 2}))
	assert.Equal(t, []float64{19, 22, 43, 50}, c.Data())
}

func TestTranspose(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	at := a.Transpose()
	assert.True(t, at.Shape().Equal(Shape{3, 2}))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestReshape(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	r := a.Reshape(Shape{1, 4})
	assert.True(t, r.Shape().Equal(Shape{1, 4}))
	assert.Equal(t, a.Data(), r.Data())

	assert.Panics(t, func() { a.Reshape(Shape{3}) })
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   int
	}{
		{"simple", []float64{0.1, 0.7, 0.2}, 1},
		{"first element", []float64{5, 1, 2}, 0},
		{"last element", []float64{1, 2, 5}, 2},
		{"tie keeps lowest index", []float64{1, 3, 3, 2}, 1},
		{"all equal keeps zero", []float64{2, 2, 2}, 0},
		{"negative values", []float64{-3, -1, -2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Argmax(tt.scores); got != tt.want {
				t.Errorf("Argmax(%v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestArgmax_Deterministic(t *testing.T) {
	// Same unperturbed score vector must always yield the same label.
	scores := []float64{0.5, 0.5, 0.1}
	first := Argmax(scores)
	for i := 0; i < 100; i++ {
		if got := Argmax(scores); got != first {
			t.Fatalf("Argmax not deterministic: %d vs %d", got, first)
		}
	}
	assert.Equal(t, 0, first)
}

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestNorm_MatchesManual(t *testing.T) {
	x, _ := FromSlice([]float64{1, -2, 2}, Shape{3})
	want := math.Sqrt(1 + 4 + 4)
	assert.InDelta(t, want, x.Norm(), 1e-12)
}
