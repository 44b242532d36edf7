package eval

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foil-ml/foil/internal/deepfool"
	"github.com/foil-ml/foil/internal/persist"
	"github.com/foil-ml/foil/internal/tensor"
)

// Runner evaluates folds sequentially. Model inference is treated as
// not thread-safe, so examples within a run are never processed
// concurrently.
type Runner struct {
	eta      float64
	maxIter  int
	cacheDir string
	store    *persist.Store
	log      *zap.Logger
}

// NewRunner creates a Runner. cacheDir may be empty to disable ratio
// caching; store may be nil when caching is disabled.
func NewRunner(eta float64, maxIter int, cacheDir string, store *persist.Store, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		eta:      eta,
		maxIter:  maxIter,
		cacheDir: cacheDir,
		store:    store,
		log:      log,
	}
}

// Evaluate runs every fold and aggregates the cross-fold mean ratio.
func (r *Runner) Evaluate(folds []*Fold) (*Report, error) {
	if len(folds) == 0 {
		return nil, fmt.Errorf("eval: no folds to evaluate")
	}

	report := &Report{RunID: uuid.NewString()}
	r.log.Info("starting evaluation run",
		zap.String("run_id", report.RunID),
		zap.Int("folds", len(folds)),
		zap.Float64("eta", r.eta),
		zap.Int("max_iter", r.maxIter))

	var foldMeans []float64
	for _, fold := range folds {
		fr, err := r.EvaluateFold(fold)
		if err != nil {
			return nil, fmt.Errorf("eval: fold %s: %w", fold.Name, err)
		}
		report.Folds = append(report.Folds, *fr)
		foldMeans = append(foldMeans, fr.MeanRatio)
	}
	report.MeanRatio = mean(foldMeans)

	r.log.Info("evaluation run finished",
		zap.String("run_id", report.RunID),
		zap.Float64("mean_ratio", report.MeanRatio))
	return report, nil
}

// EvaluateFold computes the robustness ratio for every example in the
// fold and its mean. When a cache directory is configured and a cached
// ratio list exists for the fold, it is reused; cache write failures
// are logged and otherwise ignored, since the computed result is still
// valid.
func (r *Runner) EvaluateFold(fold *Fold) (*FoldReport, error) {
	if len(fold.Examples) == 0 {
		return nil, fmt.Errorf("fold has no examples")
	}

	if cached, ok := r.loadCached(fold); ok {
		return cached, nil
	}

	fr := &FoldReport{Fold: fold.Name}
	for i, x := range fold.Examples {
		rows, err := fold.Model.Predict([]*tensor.Input{x})
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		label0 := tensor.Argmax(rows[0])

		res, err := deepfool.DeepFool(fold.Model, x, r.eta, r.maxIter)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		if res.Iterations == r.maxIter && res.FinalLabel == label0 {
			fr.NonConverged++
		}
		fr.Ratios = append(fr.Ratios, deepfool.Robustness(x, res.Perturbation))
	}
	fr.MeanRatio = mean(fr.Ratios)

	r.log.Info("fold evaluated",
		zap.String("fold", fold.Name),
		zap.Int("examples", len(fold.Examples)),
		zap.Int("non_converged", fr.NonConverged),
		zap.Float64("mean_ratio", fr.MeanRatio))

	r.saveCache(fold, fr)
	return fr, nil
}

func (r *Runner) cachePath(fold *Fold) string {
	return filepath.Join(r.cacheDir, fold.Name+".ratios.gob")
}

func (r *Runner) loadCached(fold *Fold) (*FoldReport, bool) {
	if r.cacheDir == "" || r.store == nil {
		return nil, false
	}
	path := r.cachePath(fold)
	if !r.store.Exists(path) {
		return nil, false
	}
	var ratios []float64
	if err := r.store.Load(path, &ratios); err != nil || len(ratios) == 0 {
		// Notice already logged by the store; recompute.
		return nil, false
	}
	r.log.Info("fold ratios loaded from cache",
		zap.String("fold", fold.Name), zap.String("path", path))
	return &FoldReport{
		Fold:      fold.Name,
		Ratios:    ratios,
		MeanRatio: mean(ratios),
		FromCache: true,
	}, true
}

func (r *Runner) saveCache(fold *Fold, fr *FoldReport) {
	if r.cacheDir == "" || r.store == nil {
		return
	}
	// Best effort: the store logs a notice on failure.
	_ = r.store.Save(r.cachePath(fold), fr.Ratios)
}
