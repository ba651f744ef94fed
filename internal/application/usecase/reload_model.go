package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/churnwatch/risk-service/internal/application/dto"
	"github.com/churnwatch/risk-service/internal/domain/port"
)

// ReloadModel is the use case for swapping in a fresh artifact from the
// backing source without restarting the service.
type ReloadModel struct {
	provider port.ArtifactProvider
	logger   *slog.Logger
}

// NewReloadModel creates a new ReloadModel use case.
func NewReloadModel(provider port.ArtifactProvider, logger *slog.Logger) *ReloadModel {
	return &ReloadModel{provider: provider, logger: logger}
}

// Execute reloads the artifact. On failure the previous artifact stays
// active, so a broken deployment never takes scoring down.
func (uc *ReloadModel) Execute(ctx context.Context) (dto.ModelInfoResponse, error) {
	previous := uc.provider.Current().Version()

	artifact, err := uc.provider.Reload(ctx)
	if err != nil {
		uc.logger.Error("model reload failed, keeping active artifact",
			slog.String("active_version", previous),
			slog.String("error", err.Error()),
		)
		return dto.ModelInfoResponse{}, fmt.Errorf("failed to reload model: %w", err)
	}

	uc.logger.Info("model artifact reloaded",
		slog.String("previous_version", previous),
		slog.String("version", artifact.Version()),
	)
	return dto.FromArtifact(artifact), nil
}
