package service

import (
	"log/slog"

	"github.com/churnwatch/risk-service/pkg/observability"
)

// CategoricalNormalizer maps a category label to its position in the encoder
// metadata the classifier was trained with. A label not found in the known
// list never fails the call: it deterministically falls back to index 0 and
// emits a low-severity diagnostic. The classifier was trained on a fixed
// label set; at serving time the world may present unseen labels, and the
// other fields' contributions must survive one bad field.
type CategoricalNormalizer struct {
	logger  *slog.Logger
	metrics *observability.ScoringMetrics
}

// NewCategoricalNormalizer creates a normalizer. metrics may be nil.
func NewCategoricalNormalizer(logger *slog.Logger, metrics *observability.ScoringMetrics) *CategoricalNormalizer {
	return &CategoricalNormalizer{logger: logger, metrics: metrics}
}

// Index returns the position of candidate within knownLabels, or 0 with the
// fallback diagnostic when the candidate is unknown.
func (n *CategoricalNormalizer) Index(field, candidate string, knownLabels []string) int {
	for i, label := range knownLabels {
		if label == candidate {
			return i
		}
	}

	n.logger.Debug("categorical value not in encoder metadata, falling back to first label",
		slog.String("field", field),
		slog.String("value", candidate),
	)
	if n.metrics != nil {
		n.metrics.NormalizationFallbacks.WithLabelValues(field).Inc()
	}
	return 0
}
