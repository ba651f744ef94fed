package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/churnwatch/risk-service/internal/domain/model"
)

// bundle is the on-disk JSON layout of a frozen model artifact, exported by
// the training job.
type bundle struct {
	Version      string               `json:"version"`
	ModelType    string               `json:"model_type"`
	TrainedAt    time.Time            `json:"trained_at"`
	Columns      []string             `json:"columns"`
	Encoders     map[string][]string  `json:"encoders"`
	Importance   map[string]float64   `json:"feature_importance"`
	Coefficients logisticCoefficients `json:"coefficients"`
}

type logisticCoefficients struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// FileLoader implements port.ArtifactLoader over a JSON bundle on disk.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the given artifact path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Path returns the watched artifact path.
func (l *FileLoader) Path() string { return l.path }

// Load reads and validates the artifact bundle. All integrity checks happen
// here so a broken bundle never becomes the active artifact.
func (l *FileLoader) Load(_ context.Context) (*model.ModelArtifact, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read artifact bundle: %w", err)
	}

	var b bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode artifact bundle %s: %w", l.path, err)
	}

	if b.ModelType != "" && b.ModelType != "logistic_regression" {
		return nil, fmt.Errorf("unsupported model type %q", b.ModelType)
	}
	if len(b.Coefficients.Weights) != len(b.Columns) {
		return nil, fmt.Errorf("artifact has %d weights for %d columns",
			len(b.Coefficients.Weights), len(b.Columns))
	}

	classifier, err := model.NewLogisticClassifier(b.Coefficients.Weights, b.Coefficients.Intercept)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	artifact, err := model.NewModelArtifact(
		b.Version, b.TrainedAt, b.Columns, b.Encoders, b.Importance, classifier,
	)
	if err != nil {
		return nil, fmt.Errorf("artifact bundle %s: %w", l.path, err)
	}
	return artifact, nil
}
