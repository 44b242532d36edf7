package deepfool

import "github.com/foil-ml/foil/internal/tensor"

// Robustness returns the ratio of the perturbation's norm to the
// input's norm, both taken as the joint Euclidean norm over all
// fields. Averaged over a test set, it characterizes a classifier's
// adversarial robustness.
//
// Precondition: x must have nonzero norm. A zero input norm divides by
// zero and yields +Inf or NaN; callers guarantee nonzero inputs.
func Robustness(x, r *tensor.Input) float64 {
	return r.Norm() / x.Norm()
}
