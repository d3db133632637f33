package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

// GetAssessment is the use case for retrieving an existing assessment.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves a fraud assessment by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	if req.AssessmentID == uuid.Nil {
		return dto.AssessmentResponse{}, &service.ValidationError{Problems: []string{"assessment ID is required"}}
	}

	assessment, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %s", port.ErrAssessmentNotFound, req.AssessmentID)
	}

	return dto.FromModel(assessment), nil
}
