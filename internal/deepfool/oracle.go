package deepfool

import (
	"fmt"

	"github.com/foil-ml/foil/internal/autodiff"
	"github.com/foil-ml/foil/internal/tensor"
)

// GradientAndScores evaluates the model on x and returns the gradient
// of the class-th output score with respect to every element of x,
// together with the full score vector from the same forward pass.
//
// The gradient has the same field structure as x. A fresh tape is
// acquired per call and cleared on every exit path, so no
// differentiation state leaks between class queries. Model evaluation
// errors propagate to the caller unrecovered.
func GradientAndScores(m Model, x *tensor.Input, class int) (*tensor.Input, []float64, error) {
	tape := autodiff.NewTape()
	tape.StartRecording()
	defer tape.Clear()

	out, err := m.Scores(tape, x)
	if err != nil {
		return nil, nil, err
	}

	scores := append([]float64(nil), out.Data()...)
	if class < 0 || class >= len(scores) {
		return nil, nil, fmt.Errorf("class index %d out of range [0, %d)", class, len(scores))
	}

	// Differentiate the scalar score of the requested class: seed the
	// backward pass with a one-hot over the score row.
	seed := tensor.Zeros(out.Shape())
	seed.Data()[class] = 1
	grads := tape.Backward(out, seed)

	fields := make([]tensor.Field, x.NumFields())
	for i := 0; i < x.NumFields(); i++ {
		f := x.Field(i)
		if g, ok := grads[f.Tensor]; ok {
			fields[i] = tensor.Field{Name: f.Name, Tensor: g}
		} else {
			// No gradient flowed to this field: its sensitivity is zero.
			fields[i] = tensor.Field{Name: f.Name, Tensor: tensor.Zeros(f.Tensor.Shape())}
		}
	}
	grad, err := tensor.NewInput(fields...)
	if err != nil {
		return nil, nil, err
	}
	return grad, scores, nil
}
