package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnwatch/risk-service/internal/application/usecase"
	"github.com/churnwatch/risk-service/internal/domain/model"
)

func TestGetModelInfo_Execute(t *testing.T) {
	uc := usecase.NewGetModelInfo(&mockArtifactProvider{artifact: testArtifact(t, 0)})

	info := uc.Execute(context.Background())

	assert.Equal(t, "v2.3.1", info.Version)
	assert.Equal(t, "logistic_regression", info.Kind)
	assert.Equal(t, testColumns(), info.Columns)
	assert.Equal(t, 16, info.FeatureCount)
	assert.Equal(t, 12, info.CategoricalNum)
}

func TestReloadModel_Execute(t *testing.T) {
	t.Run("successful reload reports the new artifact", func(t *testing.T) {
		provider := &mockArtifactProvider{
			artifact: testArtifact(t, 0),
			reloadFunc: func(_ context.Context) (*model.ModelArtifact, error) {
				fresh := testArtifact(t, 0)
				return fresh, nil
			},
		}
		uc := usecase.NewReloadModel(provider, testLogger())

		info, err := uc.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "v2.3.1", info.Version)
	})

	t.Run("reload failure surfaces the error", func(t *testing.T) {
		provider := &mockArtifactProvider{
			artifact: testArtifact(t, 0),
			reloadFunc: func(_ context.Context) (*model.ModelArtifact, error) {
				return nil, fmt.Errorf("artifact file corrupted")
			},
		}
		uc := usecase.NewReloadModel(provider, testLogger())

		_, err := uc.Execute(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to reload model")
	})
}
