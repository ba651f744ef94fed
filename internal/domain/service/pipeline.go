package service

import (
	"fmt"
	"log/slog"

	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/valueobject"
)

// ScoreOutcome is the full result of one pipeline run.
type ScoreOutcome struct {
	OverallProbability    float64
	ClassifierProbability float64
	Confidence            float64
	Tier                  valueobject.RiskTier
	CategoryScores        map[string]float64
	TopFactors            []RiskFactor
	Recommendations       []string
	ModelVersion          string
}

// ScoringPipeline runs a scoring call end to end: validate, default, encode,
// assemble, classify, and blend with the category heuristics. Stateless per
// call; any number of calls may run concurrently against the same artifact.
type ScoringPipeline struct {
	validator  *FieldValidator
	defaults   *DefaultsTable
	normalizer *CategoricalNormalizer
	assembler  *FeatureAssembler
	estimator  *CategoryRiskEstimator
	aggregator *RiskAggregator
	logger     *slog.Logger
}

// NewScoringPipeline wires the pipeline components.
func NewScoringPipeline(
	validator *FieldValidator,
	defaults *DefaultsTable,
	normalizer *CategoricalNormalizer,
	assembler *FeatureAssembler,
	estimator *CategoryRiskEstimator,
	aggregator *RiskAggregator,
	logger *slog.Logger,
) *ScoringPipeline {
	return &ScoringPipeline{
		validator:  validator,
		defaults:   defaults,
		normalizer: normalizer,
		assembler:  assembler,
		estimator:  estimator,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Score runs the pipeline against the given artifact. It returns
// ValidationErrors for bad caller input; any other error is internal
// (artifact integrity or classifier invocation) and must be kept opaque to
// callers.
func (p *ScoringPipeline) Score(artifact *model.ModelArtifact, req AttributeRequest) (ScoreOutcome, error) {
	// 1. Validate every provided field, aggregating all failures.
	typed, err := p.validator.Validate(req)
	if err != nil {
		return ScoreOutcome{}, err
	}

	// 2. Fill gaps and sentinels with defaults.
	resolved := p.defaults.Apply(typed)

	// 3. Category heuristics run on the raw resolved values, before and
	// independent of encoding.
	categoryScores := p.estimator.Scores(resolved)

	// 4. Encode categorical fields and build the numeric mapping.
	numeric := make(map[string]float64, len(artifact.Columns()))
	for field, value := range resolved {
		if labels, ok := artifact.EncoderLabels(field); ok {
			numeric[field] = float64(p.normalizer.Index(field, fmt.Sprint(value), labels))
			continue
		}
		if f, ok := value.(float64); ok {
			numeric[field] = f
		}
	}

	// 5. Assemble the fixed-order vector.
	vector, err := p.assembler.Assemble(numeric, artifact.Columns())
	if err != nil {
		return ScoreOutcome{}, err
	}

	// 6. Invoke the classifier. No retries: the call is pure computation, so
	// a failure means a corrupted artifact.
	probability, err := artifact.Classifier().ProbabilityOf(vector)
	if err != nil {
		return ScoreOutcome{}, fmt.Errorf("%w: %v", ErrClassifierInvocation, err)
	}

	// 7. Blend into the final result.
	provided := make([]string, 0, len(artifact.Columns()))
	for _, col := range artifact.Columns() {
		if req.Has(col) {
			provided = append(provided, col)
		}
	}

	result := p.aggregator.Aggregate(AggregateInput{
		ClassifierProbability: probability,
		CategoryScores:        categoryScores,
		ProvidedFields:        provided,
		TotalFields:           len(artifact.Columns()),
		Importance:            artifact.Importance(),
	})

	p.logger.Debug("scoring call completed",
		slog.String("model_version", artifact.Version()),
		slog.Float64("classifier_probability", probability),
		slog.Float64("overall_probability", result.OverallProbability),
		slog.String("tier", result.Tier.String()),
		slog.Int("provided_fields", len(provided)),
	)

	return ScoreOutcome{
		OverallProbability:    result.OverallProbability,
		ClassifierProbability: probability,
		Confidence:            result.Confidence,
		Tier:                  result.Tier,
		CategoryScores:        categoryScores,
		TopFactors:            result.TopFactors,
		Recommendations:       result.Recommendations,
		ModelVersion:          artifact.Version(),
	}, nil
}
