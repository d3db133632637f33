package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	pkgkafka "github.com/jayanth2212/AgriSure/pkg/kafka"
)

// ClaimAssessor runs the AssessClaim use case.
type ClaimAssessor interface {
	Execute(ctx context.Context, req dto.AssessClaimRequest) (dto.AssessmentResponse, error)
}

// ClaimsHandler scores claims submitted on the intake topic. Malformed and
// invalid claims are logged and dropped; other failures are retried.
type ClaimsHandler struct {
	assessor ClaimAssessor
	logger   *slog.Logger
}

func NewClaimsHandler(assessor ClaimAssessor, logger *slog.Logger) *ClaimsHandler {
	return &ClaimsHandler{assessor: assessor, logger: logger}
}

// Handle has the pkgkafka.Handler signature.
func (h *ClaimsHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var req dto.AssessClaimRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed claim message",
			"key", string(msg.Key),
			"error", err,
		)
		return pkgkafka.ErrDiscard
	}

	resp, err := h.assessor.Execute(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.logger.WarnContext(ctx, "dropping invalid claim",
				"claim_id", req.ClaimID,
				"error", err,
			)
			return pkgkafka.ErrDiscard
		}
		return fmt.Errorf("failed to assess claim %s: %w", req.ClaimID, err)
	}

	h.logger.InfoContext(ctx, "claim from intake assessed",
		"claim_id", resp.ClaimID,
		"risk_level", resp.RiskLevel,
	)
	return nil
}
