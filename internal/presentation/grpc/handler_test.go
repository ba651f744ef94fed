package grpc

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/churnwatch/risk-service/internal/application/usecase"
	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/service"
	"github.com/churnwatch/risk-service/pkg/auth"
	"github.com/churnwatch/risk-service/pkg/events"
)

// --- Mock implementations ---

type mockProvider struct {
	artifact  *model.ModelArtifact
	reloadErr error
}

func (m *mockProvider) Current() *model.ModelArtifact {
	return m.artifact
}

func (m *mockProvider) Reload(_ context.Context) (*model.ModelArtifact, error) {
	if m.reloadErr != nil {
		return nil, m.reloadErr
	}
	return m.artifact, nil
}

type mockPublisher struct {
	publishErr error
}

func (m *mockPublisher) Publish(_ context.Context, _ ...events.DomainEvent) error {
	return m.publishErr
}

// --- Helpers ---

func contextWithRoles(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Roles:    roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testArtifact(t *testing.T) *model.ModelArtifact {
	t.Helper()

	columns := []string{
		service.FieldTenure,
		service.FieldMonthlyCharges,
		service.FieldContract,
	}
	classifier, err := model.NewLogisticClassifier([]float64{-0.03, 0.015, -0.6}, 0.2)
	require.NoError(t, err)

	artifact, err := model.NewModelArtifact(
		"v2.3.1",
		time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		columns,
		map[string][]string{
			service.FieldContract: {"Month-to-month", "One year", "Two year"},
		},
		map[string]float64{
			service.FieldTenure:         0.4,
			service.FieldMonthlyCharges: 0.3,
			service.FieldContract:       0.3,
		},
		classifier,
	)
	require.NoError(t, err)
	return artifact
}

func buildTestHandler(t *testing.T, provider *mockProvider) *RiskServiceHandler {
	t.Helper()

	logger := testLogger()

	rules := service.ValidationRuleSet{
		Numeric: map[string]service.NumericRule{
			service.FieldTenure:         {Min: 0, Max: 120},
			service.FieldMonthlyCharges: {Min: 0, Max: 2000},
		},
		Categorical: map[string][]string{
			service.FieldContract: {"Month-to-month", "One year", "Two year"},
		},
	}
	defaults, err := service.NewDefaultsTable(map[string]any{
		service.FieldTenure:         float64(24),
		service.FieldMonthlyCharges: float64(65),
		service.FieldContract:       "Month-to-month",
	}, provider.artifact.Columns())
	require.NoError(t, err)
	estimator, err := service.NewCategoryRiskEstimator(
		service.TelcoCategorySpecs(), decimal.NewFromInt(80), logger,
	)
	require.NoError(t, err)

	pipeline := service.NewScoringPipeline(
		service.NewFieldValidator(rules),
		defaults,
		service.NewCategoricalNormalizer(logger, nil),
		service.NewFeatureAssembler(),
		estimator,
		service.NewRiskAggregator(),
		logger,
	)

	return NewRiskServiceHandler(
		usecase.NewScoreCustomer(provider, &mockPublisher{}, pipeline, nil, logger),
		usecase.NewGetModelInfo(provider),
		usecase.NewReloadModel(provider, logger),
		logger,
	)
}

// --- Tests ---

func TestRiskServiceHandler_ScoreCustomer(t *testing.T) {
	handler := buildTestHandler(t, &mockProvider{artifact: testArtifact(t)})

	t.Run("successful scoring", func(t *testing.T) {
		resp, err := handler.ScoreCustomer(contextWithRoles(auth.RoleAnalyst), &ScoreCustomerRequest{
			CustomerID: uuid.NewString(),
			Attributes: map[string]any{
				service.FieldTenure:   3,
				service.FieldContract: "Month-to-month",
			},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AssessmentID)
		assert.Equal(t, "v2.3.1", resp.ModelVersion)
		assert.NotEmpty(t, resp.RiskTier)
		assert.NotEmpty(t, resp.Recommendations)
	})

	t.Run("requires authentication", func(t *testing.T) {
		_, err := handler.ScoreCustomer(context.Background(), &ScoreCustomerRequest{
			CustomerID: uuid.NewString(),
		})

		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("rejects insufficient role", func(t *testing.T) {
		_, err := handler.ScoreCustomer(contextWithRoles("viewer"), &ScoreCustomerRequest{
			CustomerID: uuid.NewString(),
		})

		require.Error(t, err)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("rejects malformed customer ID", func(t *testing.T) {
		_, err := handler.ScoreCustomer(contextWithRoles(auth.RoleAnalyst), &ScoreCustomerRequest{
			CustomerID: "not-a-uuid",
		})

		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("validation failures return field detail", func(t *testing.T) {
		_, err := handler.ScoreCustomer(contextWithRoles(auth.RoleAnalyst), &ScoreCustomerRequest{
			CustomerID: uuid.NewString(),
			Attributes: map[string]any{
				service.FieldTenure:   -5,
				service.FieldContract: "Weekly",
			},
		})

		require.Error(t, err)
		st := status.Convert(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Contains(t, st.Message(), service.FieldTenure)
		assert.Contains(t, st.Message(), service.FieldContract)
	})

	t.Run("nil request is rejected", func(t *testing.T) {
		_, err := handler.ScoreCustomer(contextWithRoles(auth.RoleAdmin), nil)

		require.Error(t, err)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestRiskServiceHandler_GetModelInfo(t *testing.T) {
	handler := buildTestHandler(t, &mockProvider{artifact: testArtifact(t)})

	t.Run("returns artifact metadata", func(t *testing.T) {
		resp, err := handler.GetModelInfo(contextWithRoles(auth.RoleAnalyst), &GetModelInfoRequest{})

		require.NoError(t, err)
		assert.Equal(t, "v2.3.1", resp.Version)
		assert.Equal(t, "logistic_regression", resp.Kind)
		assert.Len(t, resp.Columns, 3)
	})

	t.Run("retention agents cannot inspect the model", func(t *testing.T) {
		_, err := handler.GetModelInfo(contextWithRoles(auth.RoleRetentionAgent), &GetModelInfoRequest{})

		require.Error(t, err)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}

func TestRiskServiceHandler_ReloadModel(t *testing.T) {
	t.Run("admin can reload", func(t *testing.T) {
		handler := buildTestHandler(t, &mockProvider{artifact: testArtifact(t)})

		resp, err := handler.ReloadModel(contextWithRoles(auth.RoleAdmin), &ReloadModelRequest{})

		require.NoError(t, err)
		assert.Equal(t, "v2.3.1", resp.Version)
	})

	t.Run("non-admin cannot reload", func(t *testing.T) {
		handler := buildTestHandler(t, &mockProvider{artifact: testArtifact(t)})

		_, err := handler.ReloadModel(contextWithRoles(auth.RoleAnalyst), &ReloadModelRequest{})

		require.Error(t, err)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("reload failure stays opaque", func(t *testing.T) {
		handler := buildTestHandler(t, &mockProvider{
			artifact:  testArtifact(t),
			reloadErr: assert.AnError,
		})

		_, err := handler.ReloadModel(contextWithRoles(auth.RoleAdmin), &ReloadModelRequest{})

		require.Error(t, err)
		st := status.Convert(err)
		assert.Equal(t, codes.Internal, st.Code())
		assert.Equal(t, "internal error", st.Message())
	})
}
