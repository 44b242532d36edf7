// Copyright 2025 The Foil Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the reference feed-forward classifier: a
// multi-field MLP that satisfies the deepfool model interface and can
// be checkpointed to disk. It exists so the toolkit ships with a real
// differentiable model; production users wrap their own classifiers
// instead.
package nn

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/foil-ml/foil/internal/nn"
	"github.com/foil-ml/foil/internal/persist"
)

// FieldSpec declares one named input field and its per-example shape.
type FieldSpec = nn.FieldSpec

// Classifier is a feed-forward multi-class classifier over a
// multi-field input.
type Classifier = nn.Classifier

// Linear implements a fully connected layer: y = x @ W.T + b.
type Linear = nn.Linear

// Parameter is a named tensor belonging to a layer.
type Parameter = nn.Parameter

// NewClassifier builds a classifier for the given field layout, hidden
// layer widths, and class count, deterministically from the seed.
func NewClassifier(fields []FieldSpec, hiddenSizes []int, numClasses int, seed int64) (*Classifier, error) {
	return nn.NewClassifier(fields, hiddenSizes, numClasses, seed)
}

// NewLinear creates a Linear layer with Xavier-initialized weights.
func NewLinear(name string, inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(name, inFeatures, outFeatures, rng)
}

// SaveClassifier writes the classifier's architecture and weights to
// path. Failures are logged and returned.
func SaveClassifier(c *Classifier, path string, log *zap.Logger) error {
	return c.Save(persist.NewStore(log), path)
}

// LoadClassifier reconstructs a classifier from a checkpoint written
// by SaveClassifier.
func LoadClassifier(path string, log *zap.Logger) (*Classifier, error) {
	return nn.LoadClassifier(persist.NewStore(log), path)
}
