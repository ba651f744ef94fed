package model

import (
	"fmt"
	"math"
	"time"
)

// Classifier exposes the frozen model's probability function over a numeric
// feature vector. Implementations must be deterministic and side-effect-free.
type Classifier interface {
	// ProbabilityOf returns the positive-class (attrition) probability.
	ProbabilityOf(features []float64) (float64, error)
	// Kind names the model family, e.g. "logistic_regression".
	Kind() string
}

// ModelArtifact is the frozen, load-once bundle the scoring pipeline consumes:
// classifier, per-field encoder metadata, the exact column contract, and the
// global feature-importance vector. Read-only after construction and safe to
// share across concurrent scoring calls; replacing it is done by swapping the
// reference, never by mutating in place.
type ModelArtifact struct {
	version    string
	trainedAt  time.Time
	columns    []string
	encoders   map[string][]string
	importance map[string]float64
	classifier Classifier
}

// NewModelArtifact validates the bundle's internal consistency. Any violation
// here is an artifact integrity problem and must fail loading, not scoring.
func NewModelArtifact(
	version string,
	trainedAt time.Time,
	columns []string,
	encoders map[string][]string,
	importance map[string]float64,
	classifier Classifier,
) (*ModelArtifact, error) {
	if version == "" {
		return nil, fmt.Errorf("artifact version is required")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("artifact has no expected columns")
	}
	if classifier == nil {
		return nil, fmt.Errorf("artifact has no classifier")
	}

	columnSet := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := columnSet[col]; dup {
			return nil, fmt.Errorf("duplicate column %q in column contract", col)
		}
		columnSet[col] = struct{}{}
	}

	for field, labels := range encoders {
		if len(labels) == 0 {
			return nil, fmt.Errorf("encoder metadata for %q has no labels", field)
		}
		if _, ok := columnSet[field]; !ok {
			return nil, fmt.Errorf("encoder metadata for %q does not match any column", field)
		}
	}

	sum := 0.0
	for field, weight := range importance {
		if _, ok := columnSet[field]; !ok {
			return nil, fmt.Errorf("importance entry %q does not match any column", field)
		}
		if weight < 0 {
			return nil, fmt.Errorf("importance for %q is negative", field)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return nil, fmt.Errorf("importance weights sum to %v, want 1.0", sum)
	}

	return &ModelArtifact{
		version:    version,
		trainedAt:  trainedAt,
		columns:    columns,
		encoders:   encoders,
		importance: importance,
		classifier: classifier,
	}, nil
}

// Version returns the artifact's version identifier.
func (m *ModelArtifact) Version() string { return m.version }

// TrainedAt returns when the artifact was trained.
func (m *ModelArtifact) TrainedAt() time.Time { return m.trainedAt }

// Columns returns the ordered column contract. Callers must not mutate it.
func (m *ModelArtifact) Columns() []string { return m.columns }

// EncoderLabels returns the ordered known labels for a categorical field and
// whether the field is categorical at all.
func (m *ModelArtifact) EncoderLabels(field string) ([]string, bool) {
	labels, ok := m.encoders[field]
	return labels, ok
}

// EncodedFields returns the names of all fields with encoder metadata.
func (m *ModelArtifact) EncodedFields() []string {
	fields := make([]string, 0, len(m.encoders))
	for field := range m.encoders {
		fields = append(fields, field)
	}
	return fields
}

// Importance returns the global feature-importance mapping. Callers must not
// mutate it.
func (m *ModelArtifact) Importance() map[string]float64 { return m.importance }

// Classifier returns the frozen classifier.
func (m *ModelArtifact) Classifier() Classifier { return m.classifier }
