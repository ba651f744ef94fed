package grpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/churnwatch/risk-service/internal/application/dto"
	"github.com/churnwatch/risk-service/internal/application/usecase"
	"github.com/churnwatch/risk-service/internal/domain/service"
	"github.com/churnwatch/risk-service/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// tenantIDFromContext extracts the tenant ID from JWT claims in the context.
func tenantIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.TenantID, nil
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	scoreCustomer *usecase.ScoreCustomer
	getModelInfo  *usecase.GetModelInfo
	reloadModel   *usecase.ReloadModel
	logger        *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(
	scoreCustomer *usecase.ScoreCustomer,
	getModelInfo *usecase.GetModelInfo,
	reloadModel *usecase.ReloadModel,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		scoreCustomer: scoreCustomer,
		getModelInfo:  getModelInfo,
		reloadModel:   reloadModel,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// ScoreCustomerRequest represents the proto ScoreCustomerRequest message.
type ScoreCustomerRequest struct {
	CustomerID string         `json:"customer_id"`
	Attributes map[string]any `json:"attributes"`
}

// FieldErrorMsg represents the proto FieldError message.
type FieldErrorMsg struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RiskFactorMsg represents the proto RiskFactor message.
type RiskFactorMsg struct {
	Field      string  `json:"field"`
	Importance float64 `json:"importance"`
}

// ScoreCustomerResponse represents the proto ScoreCustomerResponse message.
type ScoreCustomerResponse struct {
	AssessmentID       string             `json:"assessment_id"`
	CustomerID         string             `json:"customer_id"`
	OverallProbability float64            `json:"overall_probability"`
	Confidence         float64            `json:"confidence"`
	RiskTier           string             `json:"risk_tier"`
	CategoryScores     map[string]float64 `json:"category_scores"`
	TopFactors         []*RiskFactorMsg   `json:"top_factors"`
	Recommendations    []string           `json:"recommendations"`
	ModelVersion       string             `json:"model_version"`
	AssessedAt         string             `json:"assessed_at"`
}

// GetModelInfoRequest represents the proto GetModelInfoRequest message.
type GetModelInfoRequest struct{}

// GetModelInfoResponse represents the proto GetModelInfoResponse message.
type GetModelInfoResponse struct {
	Version       string   `json:"version"`
	Kind          string   `json:"kind"`
	TrainedAt     string   `json:"trained_at"`
	Columns       []string `json:"columns"`
	EncodedFields []string `json:"encoded_fields"`
}

// ReloadModelRequest represents the proto ReloadModelRequest message.
type ReloadModelRequest struct{}

// ReloadModelResponse represents the proto ReloadModelResponse message.
type ReloadModelResponse struct {
	Version   string `json:"version"`
	TrainedAt string `json:"trained_at"`
}

// ScoreCustomer handles a customer scoring request.
func (h *RiskServiceHandler) ScoreCustomer(ctx context.Context, req *ScoreCustomerRequest) (*ScoreCustomerResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleRetentionAgent, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid customer_id: %v", err)
	}

	h.logger.Info("scoring customer",
		slog.String("tenant_id", tenantID.String()),
		slog.String("customer_id", customerID.String()),
		slog.Int("attribute_count", len(req.Attributes)),
	)

	result, err := h.scoreCustomer.Execute(ctx, dto.ScoreCustomerRequest{
		TenantID:   tenantID,
		CustomerID: customerID,
		Attributes: req.Attributes,
	})
	if err != nil {
		// Field-level rejections carry full detail back to the caller.
		// Everything else stays opaque: integrity and classifier failures
		// describe the deployment, not the request.
		if verrs, ok := service.AsValidationErrors(err); ok {
			st := status.New(codes.InvalidArgument, "attribute validation failed")
			return nil, validationStatus(st, verrs).Err()
		}
		h.logger.Error("failed to score customer",
			slog.String("customer_id", customerID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	factors := make([]*RiskFactorMsg, len(result.TopFactors))
	for i, f := range result.TopFactors {
		factors[i] = &RiskFactorMsg{Field: f.Field, Importance: f.Importance}
	}

	return &ScoreCustomerResponse{
		AssessmentID:       result.AssessmentID.String(),
		CustomerID:         customerID.String(),
		OverallProbability: result.OverallProbability,
		Confidence:         result.Confidence,
		RiskTier:           result.RiskTier,
		CategoryScores:     result.CategoryScores,
		TopFactors:         factors,
		Recommendations:    result.Recommendations,
		ModelVersion:       result.ModelVersion,
		AssessedAt:         result.AssessedAt.Format(time.RFC3339),
	}, nil
}

// GetModelInfo handles a model metadata request.
func (h *RiskServiceHandler) GetModelInfo(ctx context.Context, req *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	info := h.getModelInfo.Execute(ctx)

	return &GetModelInfoResponse{
		Version:       info.Version,
		Kind:          info.Kind,
		TrainedAt:     info.TrainedAt.Format(time.RFC3339),
		Columns:       info.Columns,
		EncodedFields: info.EncodedFields,
	}, nil
}

// ReloadModel handles an operator-initiated artifact reload.
func (h *RiskServiceHandler) ReloadModel(ctx context.Context, req *ReloadModelRequest) (*ReloadModelResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	info, err := h.reloadModel.Execute(ctx)
	if err != nil {
		h.logger.Error("model reload request failed", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &ReloadModelResponse{
		Version:   info.Version,
		TrainedAt: info.TrainedAt.Format(time.RFC3339),
	}, nil
}

// validationStatus appends per-field detail to the InvalidArgument status.
// The message format is stable for programmatic clients.
func validationStatus(st *status.Status, verrs service.ValidationErrors) *status.Status {
	detailed := st.Message()
	for _, fe := range verrs {
		detailed += "; " + fe.Field + ": " + fe.Reason
	}
	return status.New(st.Code(), detailed)
}
