package port

import (
	"context"

	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/pkg/events"
)

// ArtifactProvider hands out the current frozen model artifact. The provider
// is the only shared mutable reference in the pipeline: implementations must
// swap the artifact atomically so in-flight calls see either the old or the
// new bundle, never a mix.
type ArtifactProvider interface {
	// Current returns the active artifact. Never nil once the service booted.
	Current() *model.ModelArtifact

	// Reload replaces the active artifact from the backing source.
	Reload(ctx context.Context) (*model.ModelArtifact, error)
}

// ArtifactLoader loads a frozen artifact from a backing source (file, model
// registry) or reports a load failure.
type ArtifactLoader interface {
	Load(ctx context.Context) (*model.ModelArtifact, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
