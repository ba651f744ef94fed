package model

import (
	"fmt"
	"math"
)

// LogisticClassifier is a frozen logistic-regression model: a weight per
// column plus an intercept. Scoring is pure in-memory computation.
type LogisticClassifier struct {
	weights   []float64
	intercept float64
}

// NewLogisticClassifier creates a classifier over the given coefficients.
func NewLogisticClassifier(weights []float64, intercept float64) (*LogisticClassifier, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("classifier has no weights")
	}
	copied := make([]float64, len(weights))
	copy(copied, weights)
	return &LogisticClassifier{weights: copied, intercept: intercept}, nil
}

// ProbabilityOf computes sigmoid(intercept + w·x). A vector length mismatch
// means the artifact is corrupted.
func (c *LogisticClassifier) ProbabilityOf(features []float64) (float64, error) {
	if len(features) != len(c.weights) {
		return 0, fmt.Errorf("feature vector has %d entries, classifier expects %d", len(features), len(c.weights))
	}

	z := c.intercept
	for i, w := range c.weights {
		z += w * features[i]
	}
	return 1.0 / (1.0 + math.Exp(-z)), nil
}

// Kind names the model family.
func (c *LogisticClassifier) Kind() string { return "logistic_regression" }
