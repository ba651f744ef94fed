package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnwatch/risk-service/internal/application/dto"
	"github.com/churnwatch/risk-service/internal/application/usecase"
	"github.com/churnwatch/risk-service/internal/domain/event"
	"github.com/churnwatch/risk-service/internal/domain/model"
	"github.com/churnwatch/risk-service/internal/domain/service"
	"github.com/churnwatch/risk-service/pkg/events"
)

// --- Mock implementations ---

type mockArtifactProvider struct {
	artifact   *model.ModelArtifact
	reloadFunc func(ctx context.Context) (*model.ModelArtifact, error)
}

func (m *mockArtifactProvider) Current() *model.ModelArtifact {
	return m.artifact
}

func (m *mockArtifactProvider) Reload(ctx context.Context) (*model.ModelArtifact, error) {
	if m.reloadFunc != nil {
		return m.reloadFunc(ctx)
	}
	return m.artifact, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

// --- Fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testColumns() []string {
	return []string{
		service.FieldTenure,
		service.FieldMonthlyCharges,
		service.FieldTotalCharges,
		service.FieldSeniorCitizen,
		service.FieldGender,
		service.FieldPartner,
		service.FieldDependents,
		service.FieldPhoneService,
		service.FieldInternetService,
		service.FieldContract,
		service.FieldPaperlessBilling,
		service.FieldPaymentMethod,
		service.FieldOnlineSecurity,
		service.FieldOnlineBackup,
		service.FieldDeviceProtection,
		service.FieldTechSupport,
	}
}

func testArtifact(t *testing.T, intercept float64) *model.ModelArtifact {
	t.Helper()

	yesNo := []string{"No", "Yes"}
	encoders := map[string][]string{
		service.FieldGender:           {"Female", "Male"},
		service.FieldPartner:          yesNo,
		service.FieldDependents:       yesNo,
		service.FieldPhoneService:     yesNo,
		service.FieldInternetService:  {"DSL", "Fiber optic", "No"},
		service.FieldContract:         {"Month-to-month", "One year", "Two year"},
		service.FieldPaperlessBilling: yesNo,
		service.FieldPaymentMethod: {
			"Electronic check",
			"Mailed check",
			"Bank transfer (automatic)",
			"Credit card (automatic)",
		},
		service.FieldOnlineSecurity:   yesNo,
		service.FieldOnlineBackup:     yesNo,
		service.FieldDeviceProtection: yesNo,
		service.FieldTechSupport:      yesNo,
	}
	importance := map[string]float64{
		service.FieldContract:         0.16,
		service.FieldTenure:           0.14,
		service.FieldMonthlyCharges:   0.12,
		service.FieldTotalCharges:     0.10,
		service.FieldInternetService:  0.09,
		service.FieldPaymentMethod:    0.08,
		service.FieldPaperlessBilling: 0.05,
		service.FieldSeniorCitizen:    0.05,
		service.FieldTechSupport:      0.04,
		service.FieldOnlineSecurity:   0.04,
		service.FieldOnlineBackup:     0.03,
		service.FieldDeviceProtection: 0.03,
		service.FieldPhoneService:     0.02,
		service.FieldPartner:          0.02,
		service.FieldDependents:       0.02,
		service.FieldGender:           0.01,
	}

	classifier, err := model.NewLogisticClassifier(make([]float64, len(testColumns())), intercept)
	require.NoError(t, err)

	artifact, err := model.NewModelArtifact(
		"v2.3.1",
		time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		testColumns(),
		encoders,
		importance,
		classifier,
	)
	require.NoError(t, err)
	return artifact
}

func testPipeline(t *testing.T) *service.ScoringPipeline {
	t.Helper()

	defaults, err := service.NewDefaultsTable(service.TelcoDefaults(), testColumns())
	require.NoError(t, err)
	estimator, err := service.NewCategoryRiskEstimator(
		service.TelcoCategorySpecs(), decimal.NewFromInt(80), testLogger(),
	)
	require.NoError(t, err)

	return service.NewScoringPipeline(
		service.NewFieldValidator(service.TelcoRuleSet()),
		defaults,
		service.NewCategoricalNormalizer(testLogger(), nil),
		service.NewFeatureAssembler(),
		estimator,
		service.NewRiskAggregator(),
		testLogger(),
	)
}

// --- Tests ---

func TestScoreCustomer_Execute(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	t.Run("successful scoring publishes completion", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewScoreCustomer(
			&mockArtifactProvider{artifact: testArtifact(t, 0)},
			publisher, testPipeline(t), nil, testLogger(),
		)

		resp, err := uc.Execute(context.Background(), dto.ScoreCustomerRequest{
			TenantID:   tenantID,
			CustomerID: customerID,
			Attributes: map[string]any{
				service.FieldTenure:   36,
				service.FieldContract: "Two year",
			},
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.AssessmentID)
		assert.Equal(t, tenantID, resp.TenantID)
		assert.Equal(t, customerID, resp.CustomerID)
		assert.Equal(t, "v2.3.1", resp.ModelVersion)
		assert.NotEmpty(t, resp.RiskTier)
		assert.Len(t, resp.CategoryScores, 5)
		assert.NotEmpty(t, resp.Recommendations)
		assert.False(t, resp.AssessedAt.IsZero())

		require.Len(t, publisher.published, 1)
		assert.Equal(t, event.EventTypeScoreCompleted, publisher.published[0].EventType())
		assert.Equal(t, resp.AssessmentID, publisher.published[0].AggregateID())
	})

	t.Run("high tier publishes detection too", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		// An intercept this large pins the classifier near 1.0.
		uc := usecase.NewScoreCustomer(
			&mockArtifactProvider{artifact: testArtifact(t, 10)},
			publisher, testPipeline(t), nil, testLogger(),
		)

		resp, err := uc.Execute(context.Background(), dto.ScoreCustomerRequest{
			TenantID:   tenantID,
			CustomerID: customerID,
			Attributes: map[string]any{},
		})

		require.NoError(t, err)
		assert.Equal(t, "high", resp.RiskTier)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.published[1].EventType())
	})

	t.Run("validation failures pass through untouched", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		uc := usecase.NewScoreCustomer(
			&mockArtifactProvider{artifact: testArtifact(t, 0)},
			publisher, testPipeline(t), nil, testLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.ScoreCustomerRequest{
			TenantID:   tenantID,
			CustomerID: customerID,
			Attributes: map[string]any{service.FieldTenure: -5},
		})

		require.Error(t, err)
		verrs, ok := service.AsValidationErrors(err)
		require.True(t, ok)
		assert.Len(t, verrs, 1)
		assert.Empty(t, publisher.published)
	})

	t.Run("missing tenant ID is rejected", func(t *testing.T) {
		uc := usecase.NewScoreCustomer(
			&mockArtifactProvider{artifact: testArtifact(t, 0)},
			&mockEventPublisher{}, testPipeline(t), nil, testLogger(),
		)

		_, err := uc.Execute(context.Background(), dto.ScoreCustomerRequest{
			CustomerID: customerID,
		})

		require.Error(t, err)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...events.DomainEvent) error {
				return fmt.Errorf("broker unavailable")
			},
		}
		uc := usecase.NewScoreCustomer(
			&mockArtifactProvider{artifact: testArtifact(t, 0)},
			publisher, testPipeline(t), nil, testLogger(),
		)

		resp, err := uc.Execute(context.Background(), dto.ScoreCustomerRequest{
			TenantID:   tenantID,
			CustomerID: customerID,
			Attributes: map[string]any{},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.RiskTier)
	})
}
