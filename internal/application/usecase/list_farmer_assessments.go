package usecase

import (
	"context"
	"fmt"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFarmerAssessments is the use case for paging through a farmer's
// assessments.
type ListFarmerAssessments struct {
	repo port.AssessmentRepository
}

func NewListFarmerAssessments(repo port.AssessmentRepository) *ListFarmerAssessments {
	return &ListFarmerAssessments{repo: repo}
}

// Execute returns one page, newest first. A zero limit uses the default page
// size and larger limits are capped.
func (uc *ListFarmerAssessments) Execute(ctx context.Context, req dto.ListFarmerAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	v := &service.ValidationError{}
	if req.FarmerID == "" {
		v.Problems = append(v.Problems, "farmer ID is required")
	}
	if req.Limit < 0 || req.Offset < 0 {
		v.Problems = append(v.Problems, "limit and offset must not be negative")
	}
	if len(v.Problems) > 0 {
		return dto.ListAssessmentsResponse{}, v
	}

	limit := req.Limit
	switch {
	case limit == 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}

	list, err := uc.repo.ListByFarmer(ctx, req.FarmerID, limit, req.Offset)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	return dto.ListAssessmentsResponse{
		Assessments: dto.FromModels(list),
		Limit:       limit,
		Offset:      req.Offset,
	}, nil
}
