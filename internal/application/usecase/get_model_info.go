package usecase

import (
	"context"

	"github.com/churnwatch/risk-service/internal/application/dto"
	"github.com/churnwatch/risk-service/internal/domain/port"
)

// GetModelInfo is the use case for describing the active model artifact.
type GetModelInfo struct {
	provider port.ArtifactProvider
}

// NewGetModelInfo creates a new GetModelInfo use case.
func NewGetModelInfo(provider port.ArtifactProvider) *GetModelInfo {
	return &GetModelInfo{provider: provider}
}

// Execute returns metadata about the currently active artifact.
func (uc *GetModelInfo) Execute(_ context.Context) dto.ModelInfoResponse {
	return dto.FromArtifact(uc.provider.Current())
}
