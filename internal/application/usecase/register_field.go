package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

// RegisterField stores a field boundary so later claims on that field get an
// area estimate.
type RegisterField struct {
	fields port.FieldBoundaryRegistry
}

func NewRegisterField(fields port.FieldBoundaryRegistry) *RegisterField {
	return &RegisterField{fields: fields}
}

func (uc *RegisterField) Execute(ctx context.Context, req dto.RegisterFieldRequest) (dto.RegisterFieldResponse, error) {
	v := &service.ValidationError{}
	if req.FarmerID == "" {
		v.Problems = append(v.Problems, "farmer ID is required")
	}
	if len(req.Boundary) == 0 {
		v.Problems = append(v.Problems, "boundary is required")
	}
	if len(v.Problems) > 0 {
		return dto.RegisterFieldResponse{}, v
	}

	id, err := uc.fields.RegisterBoundary(ctx, req.FarmerID, req.Boundary)
	if errors.Is(err, port.ErrInvalidBoundary) {
		return dto.RegisterFieldResponse{}, &service.ValidationError{Problems: []string{err.Error()}}
	}
	if err != nil {
		return dto.RegisterFieldResponse{}, fmt.Errorf("failed to register field: %w", err)
	}
	return dto.RegisterFieldResponse{FieldID: id, FarmerID: req.FarmerID}, nil
}
