package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/churnwatch/risk-service/internal/application/dto"
	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/port"
	"github.com/churnwatch/risk-service/internal/domain/service"
	"github.com/churnwatch/risk-service/pkg/observability"
)

// ScoreCustomer is the use case for running one full scoring call: pipeline,
// aggregate, event publication.
type ScoreCustomer struct {
	provider  port.ArtifactProvider
	publisher port.EventPublisher
	pipeline  *service.ScoringPipeline
	metrics   *observability.ScoringMetrics
	logger    *slog.Logger
}

// NewScoreCustomer creates a new ScoreCustomer use case. metrics may be nil.
func NewScoreCustomer(
	provider port.ArtifactProvider,
	publisher port.EventPublisher,
	pipeline *service.ScoringPipeline,
	metrics *observability.ScoringMetrics,
	logger *slog.Logger,
) *ScoreCustomer {
	return &ScoreCustomer{
		provider:  provider,
		publisher: publisher,
		pipeline:  pipeline,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute scores a customer against the current artifact, completes the
// assessment aggregate, and publishes the resulting domain events.
// ValidationErrors pass through for the caller; every other failure is
// internal.
func (uc *ScoreCustomer) Execute(ctx context.Context, req dto.ScoreCustomerRequest) (dto.ScoreCustomerResponse, error) {
	started := time.Now()

	assessment, err := model.NewRiskAssessment(req.TenantID, req.CustomerID)
	if err != nil {
		return dto.ScoreCustomerResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	// The artifact reference is captured once so the whole call sees one
	// consistent bundle even if a reload lands mid-flight.
	artifact := uc.provider.Current()

	outcome, err := uc.pipeline.Score(artifact, service.AttributeRequest(req.Attributes))
	if err != nil {
		if _, ok := service.AsValidationErrors(err); ok {
			if uc.metrics != nil {
				uc.metrics.ValidationFailures.Inc()
			}
			return dto.ScoreCustomerResponse{}, err
		}
		uc.logger.Error("scoring pipeline failed",
			slog.String("tenant_id", req.TenantID.String()),
			slog.String("customer_id", req.CustomerID.String()),
			slog.String("model_version", artifact.Version()),
			slog.String("error", err.Error()),
		)
		return dto.ScoreCustomerResponse{}, fmt.Errorf("failed to score customer: %w", err)
	}

	factorFields := make([]string, len(outcome.TopFactors))
	for i, f := range outcome.TopFactors {
		factorFields[i] = f.Field
	}

	if err := assessment.Complete(
		outcome.ModelVersion,
		outcome.OverallProbability,
		outcome.Confidence,
		outcome.Tier,
		outcome.CategoryScores,
		factorFields,
		outcome.Recommendations,
	); err != nil {
		return dto.ScoreCustomerResponse{}, fmt.Errorf("failed to complete assessment: %w", err)
	}

	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			// Scoring already succeeded; a publish failure must not fail
			// the caller's request.
			uc.logger.Error("failed to publish domain events",
				slog.String("assessment_id", assessment.ID().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ScoringRequests.WithLabelValues(outcome.Tier.String()).Inc()
		uc.metrics.ScoringDuration.Observe(time.Since(started).Seconds())
	}

	return dto.FromAssessment(assessment, outcome.TopFactors), nil
}
