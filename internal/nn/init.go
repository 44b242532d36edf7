package nn

import (
	"math"
	"math/rand"

	"github.com/foil-ml/foil/internal/tensor"
)

// Xavier creates a tensor initialized with Xavier/Glorot uniform
// distribution: U(-limit, limit) with limit = sqrt(6 / (fanIn + fanOut)).
//
// The caller supplies the random source so that a classifier built
// from a seed is fully deterministic.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * limit
	}
	return t
}
