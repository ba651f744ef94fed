package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/churnwatch/risk-service/internal/domain/model"
)

// ModelRegistry implements port.ArtifactLoader over a Postgres table the
// training pipeline publishes frozen artifact bundles into. The service only
// reads; publishing is the trainer's job.
type ModelRegistry struct {
	pool *pgxpool.Pool
}

// NewModelRegistry creates a registry over an existing connection pool.
func NewModelRegistry(pool *pgxpool.Pool) *ModelRegistry {
	return &ModelRegistry{pool: pool}
}

type registryRow struct {
	Version      string              `json:"version"`
	Columns      []string            `json:"columns"`
	Encoders     map[string][]string `json:"encoders"`
	Importance   map[string]float64  `json:"feature_importance"`
	Coefficients struct {
		Weights   []float64 `json:"weights"`
		Intercept float64   `json:"intercept"`
	} `json:"coefficients"`
}

// Load fetches the most recently published active artifact.
func (r *ModelRegistry) Load(ctx context.Context) (*model.ModelArtifact, error) {
	query := `
		SELECT version, trained_at, bundle
		FROM model_artifacts
		WHERE active = true
		ORDER BY published_at DESC
		LIMIT 1
	`

	var (
		version   string
		trainedAt time.Time
		raw       []byte
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&version, &trainedAt, &raw); err != nil {
		return nil, fmt.Errorf("query model registry: %w", err)
	}

	var row registryRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode registry bundle %s: %w", version, err)
	}
	if len(row.Coefficients.Weights) != len(row.Columns) {
		return nil, fmt.Errorf("registry bundle %s has %d weights for %d columns",
			version, len(row.Coefficients.Weights), len(row.Columns))
	}

	classifier, err := model.NewLogisticClassifier(row.Coefficients.Weights, row.Coefficients.Intercept)
	if err != nil {
		return nil, fmt.Errorf("build classifier from registry bundle %s: %w", version, err)
	}

	artifact, err := model.NewModelArtifact(
		version, trainedAt, row.Columns, row.Encoders, row.Importance, classifier,
	)
	if err != nil {
		return nil, fmt.Errorf("registry bundle %s: %w", version, err)
	}
	return artifact, nil
}

// Versions lists all published artifact versions, newest first. Used by
// operational tooling, not by the scoring path.
func (r *ModelRegistry) Versions(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT version FROM model_artifacts ORDER BY published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query model versions: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan model version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
