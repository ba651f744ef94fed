package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/port"
)

// Provider implements port.ArtifactProvider with an atomically swapped
// reference. In-flight scoring calls hold the artifact they started with;
// Reload only changes what subsequent calls see.
type Provider struct {
	loader  port.ArtifactLoader
	current atomic.Pointer[model.ModelArtifact]
	logger  *slog.Logger
}

// NewProvider loads the initial artifact eagerly; the service must not come
// up without a working model.
func NewProvider(ctx context.Context, loader port.ArtifactLoader, logger *slog.Logger) (*Provider, error) {
	p := &Provider{loader: loader, logger: logger}

	initial, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load initial artifact: %w", err)
	}
	p.current.Store(initial)

	logger.Info("model artifact loaded",
		slog.String("version", initial.Version()),
		slog.Int("columns", len(initial.Columns())),
	)
	return p, nil
}

// Current returns the active artifact.
func (p *Provider) Current() *model.ModelArtifact {
	return p.current.Load()
}

// Reload loads a fresh artifact and swaps it in. On failure the active
// artifact is left untouched.
func (p *Provider) Reload(ctx context.Context) (*model.ModelArtifact, error) {
	fresh, err := p.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	previous := p.current.Swap(fresh)
	p.logger.Info("model artifact swapped",
		slog.String("previous_version", previous.Version()),
		slog.String("version", fresh.Version()),
	)
	return fresh, nil
}
