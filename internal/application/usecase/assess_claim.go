package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

// AssessClaimDeps wires the AssessClaim use case. History, Locations, Hasher
// and Sink are optional.
type AssessClaimDeps struct {
	Engine    *service.FraudEngine
	Repo      port.AssessmentRepository
	History   port.ClaimHistoryRepository
	Locations port.ClaimLocationRegistrar
	Hasher    port.ReportHasher
	Sink      port.ReportSink
	Publisher port.EventPublisher
	Logger    *slog.Logger
}

// AssessClaim is the use case for scoring a claim and recording the result.
type AssessClaim struct {
	engine    *service.FraudEngine
	repo      port.AssessmentRepository
	history   port.ClaimHistoryRepository
	locations port.ClaimLocationRegistrar
	hasher    port.ReportHasher
	sink      port.ReportSink
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewAssessClaim creates a new AssessClaim use case.
func NewAssessClaim(deps AssessClaimDeps) *AssessClaim {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &AssessClaim{
		engine:    deps.Engine,
		repo:      deps.Repo,
		history:   deps.History,
		locations: deps.Locations,
		hasher:    deps.Hasher,
		sink:      deps.Sink,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
}

// Execute scores the claim, persists the assessment and report, and publishes
// the assessment events.
func (uc *AssessClaim) Execute(ctx context.Context, req dto.AssessClaimRequest) (dto.AssessmentResponse, error) {
	// 1. Convert and validate the request.
	farmer, claim, history, err := req.ToDomain()
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	if err := service.Validate(farmer, claim); err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 2. Load the farmer's history unless the caller supplied it.
	if history == nil && uc.history != nil {
		history, err = uc.history.ListByFarmer(ctx, farmer.FarmerID, claim.ClaimID)
		if err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to load claim history: %w", err)
		}
	}

	// 3. Score.
	assessment, err := uc.engine.Assess(ctx, farmer, claim, history)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to assess claim: %w", err)
	}

	// 4. Persist the assessment.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	// 5. Make this claim visible to later ones.
	if uc.locations != nil && claim.HasValidLocation() {
		if err := uc.locations.RegisterClaimLocation(ctx, claim.ClaimID, farmer.FarmerID, *claim.Location); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to register claim location: %w", err)
		}
	}
	if uc.history != nil {
		if err := uc.history.Append(ctx, farmer.FarmerID, claim.ClaimID, claim.AsHistoricalRecord()); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to record claim history: %w", err)
		}
	}

	// 6. Anchor and store the report.
	hash := req.ExternalRecordHash
	if hash == "" && uc.hasher != nil {
		hash, err = uc.hasher.Hash(assessment.Report())
		if err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to hash fraud report: %w", err)
		}
	}
	var confirmation port.Confirmation
	if uc.sink != nil {
		confirmation, err = uc.sink.Persist(ctx, farmer.FarmerID, assessment, hash)
		if err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to persist fraud report: %w", err)
		}
	}

	// 7. Publish domain events.
	events := assessment.ClearEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "claim assessment recorded",
		"assessment_id", assessment.ID(),
		"claim_id", claim.ClaimID,
		"disposition", assessment.Disposition().String(),
		"report_reference", confirmation.Reference,
	)

	resp := dto.FromModel(assessment)
	resp.LedgerHash = hash
	resp.ReportReference = confirmation.Reference
	return resp, nil
}
