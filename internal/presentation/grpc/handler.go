package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/application/usecase"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasAnyRole(roles...) {
		return status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return nil
}

// toStatus maps use case errors onto gRPC codes. Unexpected errors are
// reported as Internal without detail.
func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, "assessment not found")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that FraudServiceHandler implements FraudServiceServer.
var _ FraudServiceServer = (*FraudServiceHandler)(nil)

// FraudServiceHandler implements the gRPC FraudServiceServer interface.
type FraudServiceHandler struct {
	UnimplementedFraudServiceServer
	assessClaim   *usecase.AssessClaim
	getAssessment *usecase.GetAssessment
	listFarmer    *usecase.ListFarmerAssessments
	logger        *slog.Logger
}

// NewFraudServiceHandler creates a new gRPC handler.
func NewFraudServiceHandler(
	assessClaim *usecase.AssessClaim,
	getAssessment *usecase.GetAssessment,
	listFarmer *usecase.ListFarmerAssessments,
	logger *slog.Logger,
) *FraudServiceHandler {
	return &FraudServiceHandler{
		assessClaim:   assessClaim,
		getAssessment: getAssessment,
		listFarmer:    listFarmer,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// AssessClaimRequest represents the proto AssessClaimRequest message.
type AssessClaimRequest struct {
	Claim *dto.AssessClaimRequest `json:"claim"`
}

// SubScoresMsg represents the proto SubScores message.
type SubScoresMsg struct {
	Temporal   float64 `json:"temporal"`
	Geospatial float64 `json:"geospatial"`
	Weather    float64 `json:"weather"`
	Satellite  float64 `json:"satellite"`
	Behavioral float64 `json:"behavioral"`
}

// FraudAssessmentMsg represents the proto FraudAssessment message.
type FraudAssessmentMsg struct {
	ID                        string        `json:"id"`
	ClaimID                   string        `json:"claim_id"`
	FarmerID                  string        `json:"farmer_id"`
	FraudScore                float64       `json:"fraud_score"`
	RiskLevel                 string        `json:"risk_level"`
	Disposition               string        `json:"disposition"`
	FraudIndicators           []string      `json:"fraud_indicators"`
	ProviderNotes             []string      `json:"provider_notes,omitempty"`
	SubScores                 *SubScoresMsg `json:"sub_scores"`
	RequiresFieldVerification bool          `json:"requires_field_verification"`
	AutoReject                bool          `json:"auto_reject"`
	LedgerHash                string        `json:"ledger_hash,omitempty"`
	ReportReference           string        `json:"report_reference,omitempty"`
	AssessedAt                string        `json:"assessed_at"`
}

// AssessClaimResponse represents the proto AssessClaimResponse message.
type AssessClaimResponse struct {
	Assessment *FraudAssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *FraudAssessmentMsg `json:"assessment"`
}

// ListFarmerAssessmentsRequest represents the proto ListFarmerAssessmentsRequest message.
type ListFarmerAssessmentsRequest struct {
	FarmerID string `json:"farmer_id"`
	PageSize int32  `json:"page_size"`
	Offset   int32  `json:"offset"`
}

// ListFarmerAssessmentsResponse represents the proto ListFarmerAssessmentsResponse message.
type ListFarmerAssessmentsResponse struct {
	Assessments []*FraudAssessmentMsg `json:"assessments"`
	PageSize    int32                 `json:"page_size"`
	Offset      int32                 `json:"offset"`
}

func toMsg(r dto.AssessmentResponse) *FraudAssessmentMsg {
	return &FraudAssessmentMsg{
		ID:              r.ID.String(),
		ClaimID:         r.ClaimID.String(),
		FarmerID:        r.FarmerID,
		FraudScore:      r.FraudScore,
		RiskLevel:       r.RiskLevel,
		Disposition:     r.Disposition,
		FraudIndicators: r.FraudIndicators,
		ProviderNotes:   r.ProviderNotes,
		SubScores: &SubScoresMsg{
			Temporal:   r.SubScores.Temporal,
			Geospatial: r.SubScores.Geospatial,
			Weather:    r.SubScores.Weather,
			Satellite:  r.SubScores.Satellite,
			Behavioral: r.SubScores.Behavioral,
		},
		RequiresFieldVerification: r.RequiresFieldVerification,
		AutoReject:                r.AutoReject,
		LedgerHash:                r.LedgerHash,
		ReportReference:           r.ReportReference,
		AssessedAt:                r.AssessedAt.Format(time.RFC3339Nano),
	}
}

// AssessClaim scores a claim.
func (h *FraudServiceHandler) AssessClaim(ctx context.Context, req *AssessClaimRequest) (*AssessClaimResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAdjuster, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil || req.Claim == nil {
		return nil, status.Error(codes.InvalidArgument, "claim is required")
	}

	result, err := h.assessClaim.Execute(ctx, *req.Claim)
	if err != nil {
		if !errors.Is(err, service.ErrValidation) {
			h.logger.Error("failed to assess claim",
				slog.String("claim_id", req.Claim.ClaimID),
				slog.String("error", err.Error()),
			)
		}
		return nil, toStatus(err)
	}

	return &AssessClaimResponse{Assessment: toMsg(result)}, nil
}

// GetAssessment handles a get assessment request.
func (h *FraudServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAdjuster, auth.RoleInvestigator, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		return nil, toStatus(err)
	}

	return &GetAssessmentResponse{Assessment: toMsg(result)}, nil
}

// ListFarmerAssessments pages through a farmer's assessments.
func (h *FraudServiceHandler) ListFarmerAssessments(ctx context.Context, req *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAdjuster, auth.RoleInvestigator); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	page, err := h.listFarmer.Execute(ctx, dto.ListFarmerAssessmentsRequest{
		FarmerID: req.FarmerID,
		Limit:    int(req.PageSize),
		Offset:   int(req.Offset),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]*FraudAssessmentMsg, 0, len(page.Assessments))
	for _, a := range page.Assessments {
		out = append(out, toMsg(a))
	}
	return &ListFarmerAssessmentsResponse{
		Assessments: out,
		PageSize:    int32(page.Limit),
		Offset:      int32(page.Offset),
	}, nil
}
