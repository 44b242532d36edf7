package nn_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/nn"
	"github.com/foil-ml/foil/internal/persist"
	"github.com/foil-ml/foil/internal/tensor"
)

func testFields() []nn.FieldSpec {
	return []nn.FieldSpec{
		{Name: "spectral", Shape: tensor.Shape{2, 3}},
		{Name: "temporal", Shape: tensor.Shape{4}},
	}
}

func testInput(t *testing.T, seed int64) *tensor.Input {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var fields []tensor.Field
	for _, spec := range testFields() {
		ten := tensor.Zeros(spec.Shape)
		data := ten.Data()
		for i := range data {
			data[i] = rng.NormFloat64()
		}
		fields = append(fields, tensor.Field{Name: spec.Name, Tensor: ten})
	}
	in, err := tensor.NewInput(fields...)
	require.NoError(t, err)
	return in
}

func TestLinear_Creation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear("test", 10, 5, rng)

	if layer.InFeatures() != 10 {
		t.Errorf("InFeatures() = %d, want 10", layer.InFeatures())
	}
	if layer.OutFeatures() != 5 {
		t.Errorf("OutFeatures() = %d, want 5", layer.OutFeatures())
	}

	// Weight shape: [out_features, in_features]
	weight := layer.Weight().Tensor()
	if !weight.Shape().Equal(tensor.Shape{5, 10}) {
		t.Errorf("Weight shape = %v, want [5 10]", weight.Shape())
	}

	// Bias starts at zero.
	for _, v := range layer.Bias().Tensor().Data() {
		assert.Zero(t, v)
	}

	assert.Equal(t, "test.weight", layer.Weight().Name())
	assert.Equal(t, "test.bias", layer.Bias().Name())
}

func TestLinear_ForwardValues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear("l", 2, 2, rng)

	// Overwrite weights for a hand-checkable result.
	copy(layer.Weight().Tensor().Data(), []float64{1, 2, 3, 4}) // [[1,2],[3,4]]
	copy(layer.Bias().Tensor().Data(), []float64{10, 20})

	x, _ := tensor.FromSlice([]float64{1, 1}, tensor.Shape{1, 2})
	y := layer.Forward(autodiff.NewTape(), x)

	// y = x @ W.T + b = [1+2, 3+4] + [10, 20] = [13, 27]
	assert.Equal(t, []float64{13, 27}, y.Data())
}

func TestClassifier_Deterministic(t *testing.T) {
	a, err := nn.NewClassifier(testFields(), []int{8}, 3, 42)
	require.NoError(t, err)
	b, err := nn.NewClassifier(testFields(), []int{8}, 3, 42)
	require.NoError(t, err)

	x := testInput(t, 7)
	rowsA, err := a.Predict([]*tensor.Input{x})
	require.NoError(t, err)
	rowsB, err := b.Predict([]*tensor.Input{x})
	require.NoError(t, err)

	assert.Equal(t, rowsA, rowsB, "same seed must produce identical scores")
	assert.Len(t, rowsA[0], 3)
}

func TestClassifier_ScoresShape(t *testing.T) {
	c, err := nn.NewClassifier(testFields(), []int{8, 6}, 4, 1)
	require.NoError(t, err)

	out, err := c.Scores(autodiff.NewTape(), testInput(t, 1))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 4}))
}

func TestClassifier_StructureValidation(t *testing.T) {
	c, err := nn.NewClassifier(testFields(), []int{8}, 3, 1)
	require.NoError(t, err)

	// Wrong field count.
	single, err := tensor.NewInput(tensor.Field{Name: "x", Tensor: tensor.Zeros(tensor.Shape{6})})
	require.NoError(t, err)
	_, err = c.Scores(autodiff.NewTape(), single)
	assert.Error(t, err)

	// Wrong field shape.
	bad, err := tensor.NewInput(
		tensor.Field{Name: "spectral", Tensor: tensor.Zeros(tensor.Shape{2, 3})},
		tensor.Field{Name: "temporal", Tensor: tensor.Zeros(tensor.Shape{5})},
	)
	require.NoError(t, err)
	_, err = c.Scores(autodiff.NewTape(), bad)
	assert.Error(t, err)
}

func TestClassifier_InvalidConstruction(t *testing.T) {
	_, err := nn.NewClassifier(nil, []int{8}, 3, 1)
	assert.Error(t, err)

	_, err = nn.NewClassifier(testFields(), []int{8}, 1, 1)
	assert.Error(t, err)

	_, err = nn.NewClassifier(testFields(), []int{0}, 3, 1)
	assert.Error(t, err)
}

func TestClassifier_CheckpointRoundtrip(t *testing.T) {
	store := persist.NewStore(zap.NewNop())
	path := filepath.Join(t.TempDir(), "model.gob")

	orig, err := nn.NewClassifier(testFields(), []int{8}, 3, 99)
	require.NoError(t, err)
	require.NoError(t, orig.Save(store, path))

	loaded, err := nn.LoadClassifier(store, path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.NumClasses())

	x := testInput(t, 5)
	origRows, err := orig.Predict([]*tensor.Input{x})
	require.NoError(t, err)
	loadedRows, err := loaded.Predict([]*tensor.Input{x})
	require.NoError(t, err)
	assert.Equal(t, origRows, loadedRows, "restored classifier must predict identically")
}

func TestClassifier_CheckpointMissingFile(t *testing.T) {
	store := persist.NewStore(zap.NewNop())
	_, err := nn.LoadClassifier(store, filepath.Join(t.TempDir(), "nope.gob"))
	assert.Error(t, err)
}
