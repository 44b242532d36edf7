package deepfool

import (
	"fmt"
	"math"

	"github.com/foil-ml/foil/internal/tensor"
)

// Stabilizer is the fixed additive term in the boundary-distance and
// step-size denominators. It keeps both finite when a class's gradient
// difference is (near) zero.
const Stabilizer = 1e-3

// Result is the outcome of one perturbation search.
type Result struct {
	// Perturbation is the aggregate additive perturbation, with the
	// same field structure as the input it was computed for.
	Perturbation *tensor.Input

	// Iterations is the number of search iterations executed. It never
	// exceeds the iteration budget.
	Iterations int

	// FinalLabel is the label predicted after the final perturbation
	// was applied. If it equals the original label and Iterations
	// equals the budget, the search did not converge; that is a signal
	// for the caller, not an error.
	FinalLabel int
}

// DeepFool searches for an approximately minimal perturbation of x0
// that changes the model's predicted label.
//
// Per iteration it linearizes every non-predicted class's decision
// boundary at the current candidate, picks the class whose boundary is
// nearest (ties resolve to the lowest class index), takes the
// minimal-norm step to that linearized boundary scaled by (1 + eta),
// and re-evaluates the prediction from scratch. The loop stops on a
// label flip or after maxIter iterations.
//
// x0 is never mutated; every candidate is a fresh value. eta must be
// >= 0 and maxIter >= 0; maxIter == 0 performs no iterations and
// returns an all-zero perturbation with the unperturbed label.
func DeepFool(m Model, x0 *tensor.Input, eta float64, maxIter int) (*Result, error) {
	if eta < 0 {
		return nil, fmt.Errorf("eta must be >= 0, got %v", eta)
	}
	if maxIter < 0 {
		return nil, fmt.Errorf("maxIter must be >= 0, got %d", maxIter)
	}

	rows, err := m.Predict([]*tensor.Input{x0})
	if err != nil {
		return nil, err
	}
	numClasses := len(rows[0])
	if numClasses < 2 {
		return nil, fmt.Errorf("classifier must produce at least 2 classes, got %d", numClasses)
	}
	labelX0 := tensor.Argmax(rows[0])

	xi := x0.Clone()
	label := labelX0
	var history []*tensor.Input

	iters := 0
	for label == labelX0 && iters < maxIter {
		gradLabel, _, err := GradientAndScores(m, xi, labelX0)
		if err != nil {
			return nil, err
		}

		// Scan every other class for the nearest linearized boundary.
		// Strict < keeps the first (lowest-index) class on ties.
		minDist := math.Inf(1)
		var bestW *tensor.Input
		var bestF, bestWNorm float64
		for k := 0; k < numClasses; k++ {
			if k == labelX0 {
				continue
			}
			gradK, scoresK, err := GradientAndScores(m, xi, k)
			if err != nil {
				return nil, err
			}
			w := gradK.Sub(gradLabel)
			f := scoresK[k] - scoresK[labelX0]
			wNorm := w.Norm()
			dist := math.Abs(f) / (wNorm + Stabilizer)
			if dist < minDist {
				minDist = dist
				bestW = w
				bestF = f
				bestWNorm = wNorm
			}
		}

		if bestW == nil {
			// Only reachable when every distance compared false against
			// +Inf, i.e. NaN propagated out of the model.
			return nil, fmt.Errorf("no finite boundary distance at iteration %d (NaN in model output?)", iters)
		}

		// Minimal-norm step onto the winning linearized boundary.
		scale := math.Abs(bestF) / (bestWNorm*bestWNorm + Stabilizer)
		ri := bestW.Scale(scale)
		history = append(history, ri)

		xi = xi.AddScaled(ri, 1+eta)

		rows, err = m.Predict([]*tensor.Input{xi})
		if err != nil {
			return nil, err
		}
		label = tensor.Argmax(rows[0])
		iters++
	}

	rSum := x0.ZerosLike()
	for _, ri := range history {
		rSum = rSum.Add(ri)
	}
	return &Result{
		Perturbation: rSum,
		Iterations:   iters,
		FinalLabel:   label,
	}, nil
}
