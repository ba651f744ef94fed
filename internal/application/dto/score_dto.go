package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/service"
)

// ScoreCustomerRequest is the input DTO for the ScoreCustomer use case.
// Attributes is sparse: any subset of the model's fields, with the
// "unspecified" sentinel accepted for categoricals.
type ScoreCustomerRequest struct {
	TenantID   uuid.UUID      `json:"tenant_id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Attributes map[string]any `json:"attributes"`
}

// RiskFactorDTO is one ranked explanation entry.
type RiskFactorDTO struct {
	Field      string  `json:"field"`
	Importance float64 `json:"importance"`
}

// ScoreCustomerResponse is the output DTO returned after scoring.
type ScoreCustomerResponse struct {
	AssessmentID       uuid.UUID          `json:"assessment_id"`
	TenantID           uuid.UUID          `json:"tenant_id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	OverallProbability float64            `json:"overall_probability"`
	Confidence         float64            `json:"confidence"`
	RiskTier           string             `json:"risk_tier"`
	CategoryScores     map[string]float64 `json:"category_scores"`
	TopFactors         []RiskFactorDTO    `json:"top_factors"`
	Recommendations    []string           `json:"recommendations"`
	ModelVersion       string             `json:"model_version"`
	AssessedAt         time.Time          `json:"assessed_at"`
}

// ModelInfoResponse describes the active model artifact.
type ModelInfoResponse struct {
	Version        string    `json:"version"`
	Kind           string    `json:"kind"`
	TrainedAt      time.Time `json:"trained_at"`
	Columns        []string  `json:"columns"`
	EncodedFields  []string  `json:"encoded_fields"`
	FeatureCount   int       `json:"feature_count"`
	CategoricalNum int       `json:"categorical_count"`
}

// FromAssessment maps the completed aggregate plus the pipeline outcome's
// factor list to the response DTO.
func FromAssessment(a *model.RiskAssessment, factors []service.RiskFactor) ScoreCustomerResponse {
	dtos := make([]RiskFactorDTO, len(factors))
	for i, f := range factors {
		dtos[i] = RiskFactorDTO{Field: f.Field, Importance: f.Importance}
	}

	return ScoreCustomerResponse{
		AssessmentID:       a.ID(),
		TenantID:           a.TenantID(),
		CustomerID:         a.CustomerID(),
		OverallProbability: a.OverallProbability(),
		Confidence:         a.Confidence(),
		RiskTier:           a.Tier().String(),
		CategoryScores:     a.CategoryScores(),
		TopFactors:         dtos,
		Recommendations:    a.Recommendations(),
		ModelVersion:       a.ModelVersion(),
		AssessedAt:         a.AssessedAt(),
	}
}

// FromArtifact maps the active artifact to the info DTO.
func FromArtifact(artifact *model.ModelArtifact) ModelInfoResponse {
	return ModelInfoResponse{
		Version:        artifact.Version(),
		Kind:           artifact.Classifier().Kind(),
		TrainedAt:      artifact.TrainedAt(),
		Columns:        artifact.Columns(),
		EncodedFields:  artifact.EncodedFields(),
		FeatureCount:   len(artifact.Columns()),
		CategoricalNum: len(artifact.EncodedFields()),
	}
}
