package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/churnwatch/risk-service/internal/domain/event"
	"github.com/churnwatch/risk-service/internal/domain/valueobject"
	"github.com/churnwatch/risk-service/pkg/events"
)

// RiskAssessment is the aggregate root for one customer scoring call.
type RiskAssessment struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	customerID   uuid.UUID
	modelVersion string

	overallProbability float64
	confidence         float64
	tier               valueobject.RiskTier
	categoryScores     map[string]float64
	topFactors         []string
	recommendations    []string

	assessedAt   time.Time
	domainEvents []events.DomainEvent
}

// NewRiskAssessment creates an unscored assessment for a customer.
func NewRiskAssessment(tenantID, customerID uuid.UUID) (*RiskAssessment, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customer ID is required")
	}

	return &RiskAssessment{
		id:         uuid.New(),
		tenantID:   tenantID,
		customerID: customerID,
	}, nil
}

// Complete applies the pipeline outcome to the assessment. This is the core
// domain operation; it emits ScoreCompleted and, for the high tier,
// HighRiskDetected.
func (a *RiskAssessment) Complete(
	modelVersion string,
	overallProbability float64,
	confidence float64,
	tier valueobject.RiskTier,
	categoryScores map[string]float64,
	topFactors []string,
	recommendations []string,
) error {
	if overallProbability < 0 || overallProbability > 1 {
		return fmt.Errorf("overall probability must be within [0,1], got %v", overallProbability)
	}
	if tier.IsZero() {
		return fmt.Errorf("risk tier is required")
	}

	a.modelVersion = modelVersion
	a.overallProbability = overallProbability
	a.confidence = confidence
	a.tier = tier
	a.categoryScores = categoryScores
	a.topFactors = topFactors
	a.recommendations = recommendations
	a.assessedAt = time.Now().UTC()

	a.domainEvents = append(a.domainEvents, event.ScoreCompleted{
		AssessmentID:       a.id,
		TenantID:           a.tenantID,
		CustomerID:         a.customerID,
		ModelVersion:       a.modelVersion,
		OverallProbability: a.overallProbability,
		RiskTier:           a.tier.String(),
		CategoryScores:     a.categoryScores,
		AssessedAt:         a.assessedAt,
	})

	if a.tier.IsHigh() {
		a.domainEvents = append(a.domainEvents, event.HighRiskDetected{
			AssessmentID:       a.id,
			TenantID:           a.tenantID,
			CustomerID:         a.customerID,
			OverallProbability: a.overallProbability,
			TopFactors:         a.topFactors,
			DetectedAt:         a.assessedAt,
		})
	}

	return nil
}

// --- Accessors ---

func (a *RiskAssessment) ID() uuid.UUID                       { return a.id }
func (a *RiskAssessment) TenantID() uuid.UUID                 { return a.tenantID }
func (a *RiskAssessment) CustomerID() uuid.UUID               { return a.customerID }
func (a *RiskAssessment) ModelVersion() string                { return a.modelVersion }
func (a *RiskAssessment) OverallProbability() float64         { return a.overallProbability }
func (a *RiskAssessment) Confidence() float64                 { return a.confidence }
func (a *RiskAssessment) Tier() valueobject.RiskTier          { return a.tier }
func (a *RiskAssessment) CategoryScores() map[string]float64  { return a.categoryScores }
func (a *RiskAssessment) TopFactors() []string                { return a.topFactors }
func (a *RiskAssessment) Recommendations() []string           { return a.recommendations }
func (a *RiskAssessment) AssessedAt() time.Time               { return a.assessedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *RiskAssessment) DomainEvents() []events.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
