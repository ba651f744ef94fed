package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnwatch/risk-service/internal/domain/model"
)

func validClassifier(t *testing.T, n int) model.Classifier {
	t.Helper()
	c, err := model.NewLogisticClassifier(make([]float64, n), 0)
	require.NoError(t, err)
	return c
}

func TestNewModelArtifact(t *testing.T) {
	columns := []string{"tenure", "contract"}
	encoders := map[string][]string{"contract": {"Month-to-month", "One year"}}
	importance := map[string]float64{"tenure": 0.6, "contract": 0.4}
	trained := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid bundle", func(t *testing.T) {
		artifact, err := model.NewModelArtifact(
			"v1.0.0", trained, columns, encoders, importance, validClassifier(t, 2),
		)

		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", artifact.Version())
		assert.Equal(t, trained, artifact.TrainedAt())
		assert.Equal(t, columns, artifact.Columns())
		assert.Equal(t, "logistic_regression", artifact.Classifier().Kind())

		labels, ok := artifact.EncoderLabels("contract")
		require.True(t, ok)
		assert.Equal(t, []string{"Month-to-month", "One year"}, labels)

		_, ok = artifact.EncoderLabels("tenure")
		assert.False(t, ok)

		assert.ElementsMatch(t, []string{"contract"}, artifact.EncodedFields())
	})

	t.Run("requires a version", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"", trained, columns, encoders, importance, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("requires columns", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, nil, nil, nil, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("requires a classifier", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns, encoders, importance, nil,
		)
		require.Error(t, err)
	})

	t.Run("rejects duplicate columns", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, []string{"tenure", "tenure"}, nil,
			map[string]float64{"tenure": 1.0}, validClassifier(t, 2),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column")
	})

	t.Run("rejects encoder metadata without labels", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns,
			map[string][]string{"contract": {}}, importance, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("rejects encoder metadata for unknown column", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns,
			map[string][]string{"gender": {"Female", "Male"}}, importance, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("rejects importance for unknown column", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns, encoders,
			map[string]float64{"tenure": 0.6, "gender": 0.4}, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("rejects negative importance", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns, encoders,
			map[string]float64{"tenure": 1.4, "contract": -0.4}, validClassifier(t, 2),
		)
		require.Error(t, err)
	})

	t.Run("rejects importance not summing to one", func(t *testing.T) {
		_, err := model.NewModelArtifact(
			"v1.0.0", trained, columns, encoders,
			map[string]float64{"tenure": 0.6, "contract": 0.3}, validClassifier(t, 2),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum")
	})
}

func TestLogisticClassifier(t *testing.T) {
	t.Run("requires weights", func(t *testing.T) {
		_, err := model.NewLogisticClassifier(nil, 0)
		require.Error(t, err)
	})

	t.Run("zero coefficients give even odds", func(t *testing.T) {
		c, err := model.NewLogisticClassifier([]float64{0, 0}, 0)
		require.NoError(t, err)

		p, err := c.ProbabilityOf([]float64{12, 95})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, p, 1e-9)
	})

	t.Run("probability stays within bounds", func(t *testing.T) {
		c, err := model.NewLogisticClassifier([]float64{5, -5}, 1)
		require.NoError(t, err)

		high, err := c.ProbabilityOf([]float64{100, 0})
		require.NoError(t, err)
		low, err := c.ProbabilityOf([]float64{0, 100})
		require.NoError(t, err)

		assert.Greater(t, high, 0.99)
		assert.Less(t, low, 0.01)
		assert.LessOrEqual(t, high, 1.0)
		assert.GreaterOrEqual(t, low, 0.0)
	})

	t.Run("rejects vector length mismatch", func(t *testing.T) {
		c, err := model.NewLogisticClassifier([]float64{0.1}, 0)
		require.NoError(t, err)

		_, err = c.ProbabilityOf([]float64{1, 2, 3})
		require.Error(t, err)
	})

	t.Run("does not alias the caller's weight slice", func(t *testing.T) {
		weights := []float64{1, 1}
		c, err := model.NewLogisticClassifier(weights, 0)
		require.NoError(t, err)

		before, err := c.ProbabilityOf([]float64{1, 1})
		require.NoError(t, err)

		weights[0] = -100
		after, err := c.ProbabilityOf([]float64{1, 1})
		require.NoError(t, err)

		assert.Equal(t, before, after)
	})
}
