package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/tensor"
)

func ones(shape tensor.Shape) *tensor.Tensor {
	return tensor.Full(shape, 1)
}

func TestTape_Recording(t *testing.T) {
	tape := autodiff.NewTape()
	assert.False(t, tape.IsRecording())

	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2})

	// Not recording: no ops on the tape.
	tape.ReLU(x)
	assert.Equal(t, 0, tape.NumOps())

	tape.StartRecording()
	tape.ReLU(x)
	assert.Equal(t, 1, tape.NumOps())

	tape.Clear()
	assert.Equal(t, 0, tape.NumOps())
	assert.True(t, tape.IsRecording(), "Clear should preserve recording state")
}

func TestTape_MatMulBackward(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2})
	b, _ := tensor.FromSlice([]float64{3, 4, 5, 6}, tensor.Shape{2, 2})

	y := tape.MatMul(a, b) // [1, 2]: [1*3+2*5, 1*4+2*6] = [13, 16]
	assert.Equal(t, []float64{13, 16}, y.Data())

	grads := tape.Backward(y, ones(tensor.Shape{1, 2}))

	// d(a@b)/da = grad @ b^T = [3+4, 5+6] = [7, 11]
	require.NotNil(t, grads[a])
	assert.Equal(t, []float64{7, 11}, grads[a].Data())

	// d(a@b)/db = a^T @ grad
	require.NotNil(t, grads[b])
	assert.Equal(t, []float64{1, 1, 2, 2}, grads[b].Data())
}

func TestTape_AddBiasBroadcastBackward(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	a, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias, _ := tensor.FromSlice([]float64{10, 20, 30}, tensor.Shape{3})

	y := tape.Add(a, bias)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, y.Data())

	seed, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	grads := tape.Backward(y, seed)

	require.NotNil(t, grads[a])
	assert.Equal(t, seed.Data(), grads[a].Data())

	// Bias gradient collapses rows: [1+4, 2+5, 3+6].
	require.NotNil(t, grads[bias])
	assert.Equal(t, []float64{5, 7, 9}, grads[bias].Data())
}

func TestTape_ReLUBackward(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float64{-1, 0, 2}, tensor.Shape{1, 3})
	y := tape.ReLU(x)
	assert.Equal(t, []float64{0, 0, 2}, y.Data())

	grads := tape.Backward(y, ones(tensor.Shape{1, 3}))
	assert.Equal(t, []float64{0, 0, 1}, grads[x].Data())
}

func TestTape_ConcatBackwardSplits(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	a, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2})
	b, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1, 1})

	y := tape.Concat(a, b)
	assert.True(t, y.Shape().Equal(tensor.Shape{1, 3}))
	assert.Equal(t, []float64{1, 2, 3}, y.Data())

	seed, _ := tensor.FromSlice([]float64{10, 20, 30}, tensor.Shape{1, 3})
	grads := tape.Backward(y, seed)

	assert.Equal(t, []float64{10, 20}, grads[a].Data())
	assert.Equal(t, []float64{30}, grads[b].Data())
}

func TestTape_ReshapeTransposeBackward(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	r := tape.Reshape(x, tensor.Shape{1, 4})
	tr := tape.Reshape(r, tensor.Shape{4, 1})
	y := tape.Transpose(tr) // [1, 4]

	seed, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{1, 4})
	grads := tape.Backward(y, seed)

	require.NotNil(t, grads[x])
	assert.True(t, grads[x].Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float64{1, 2, 3, 4}, grads[x].Data())
}

func TestTape_GradientAccumulation(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2})
	y := tape.Add(x, x) // y = 2x

	grads := tape.Backward(y, ones(tensor.Shape{1, 2}))

	// Gradient flows through both uses of x and accumulates.
	assert.Equal(t, []float64{2, 2}, grads[x].Data())
}

func TestTape_BackwardSeedShapeMismatchPanics(t *testing.T) {
	tape := autodiff.NewTape()
	tape.StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{1, 2})
	y := tape.ReLU(x)

	assert.Panics(t, func() { tape.Backward(y, ones(tensor.Shape{1, 3})) })
}

func TestTape_EmptyBackward(t *testing.T) {
	tape := autodiff.NewTape()
	x, _ := tensor.FromSlice([]float64{1}, tensor.Shape{1, 1})
	grads := tape.Backward(x, ones(tensor.Shape{1, 1}))
	assert.Empty(t, grads)
}
