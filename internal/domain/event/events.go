package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeScoreCompleted is emitted when a risk assessment finishes.
	EventTypeScoreCompleted = "risk.score.completed"

	// EventTypeHighRiskDetected is emitted when the high tier is reached,
	// so retention tooling can react immediately.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// ScoreCompleted is published after every successful scoring call.
type ScoreCompleted struct {
	AssessmentID       uuid.UUID          `json:"assessment_id"`
	TenantID           uuid.UUID          `json:"tenant_id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	ModelVersion       string             `json:"model_version"`
	OverallProbability float64            `json:"overall_probability"`
	RiskTier           string             `json:"risk_tier"`
	CategoryScores     map[string]float64 `json:"category_scores"`
	AssessedAt         time.Time          `json:"assessed_at"`
}

// EventType returns the event type identifier.
func (e ScoreCompleted) EventType() string { return EventTypeScoreCompleted }

// AggregateID returns the assessment ID as the aggregate identifier.
func (e ScoreCompleted) AggregateID() uuid.UUID { return e.AssessmentID }

// OccurredAt returns when the assessment completed.
func (e ScoreCompleted) OccurredAt() time.Time { return e.AssessedAt }

// HighRiskDetected is published when a customer lands in the high tier.
type HighRiskDetected struct {
	AssessmentID       uuid.UUID `json:"assessment_id"`
	TenantID           uuid.UUID `json:"tenant_id"`
	CustomerID         uuid.UUID `json:"customer_id"`
	OverallProbability float64   `json:"overall_probability"`
	TopFactors         []string  `json:"top_factors"`
	DetectedAt         time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string { return EventTypeHighRiskDetected }

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID { return e.AssessmentID }

// OccurredAt returns when the high risk was detected.
func (e HighRiskDetected) OccurredAt() time.Time { return e.DetectedAt }
