package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/application/usecase"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
	"github.com/jayanth2212/AgriSure/internal/infrastructure/static"
	"github.com/jayanth2212/AgriSure/pkg/auth"
	"github.com/jayanth2212/AgriSure/pkg/testutil"
)

// --- Helpers ---

func contextWithRoles(roles ...string) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{Roles: roles})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	handler *FraudServiceHandler
	repo    *static.Assessments
	events  *static.EventLog
}

func buildTestHandler() testEnv {
	repo := static.NewAssessments()
	events := &static.EventLog{}
	logger := testLogger()
	engine := service.NewFraudEngine(service.EngineDeps{Logger: logger})

	return testEnv{
		handler: NewFraudServiceHandler(
			usecase.NewAssessClaim(usecase.AssessClaimDeps{
				Engine:    engine,
				Repo:      repo,
				Locations: static.NewRegistry(),
				Publisher: events,
				Logger:    logger,
			}),
			usecase.NewGetAssessment(repo),
			usecase.NewListFarmerAssessments(repo),
			logger,
		),
		repo:   repo,
		events: events,
	}
}

func validClaim() *dto.AssessClaimRequest {
	lat, lng := 30.901, 75.857
	return &dto.AssessClaimRequest{
		ClaimID:      testutil.TestClaimID1.String(),
		FarmerID:     testutil.TestFarmerID,
		CropType:     "cotton",
		DamageType:   "pest",
		ClaimDate:    "2024-06-15",
		SowingDate:   "2024-03-07",
		Latitude:     &lat,
		Longitude:    &lng,
		AreaHectares: 2,
		ClaimAmount:  25000,
		SumInsured:   50000,
		History:      []dto.HistoricalRecordDTO{},
	}
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}

// --- Tests ---

func TestAssessClaim(t *testing.T) {
	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.AssessClaim(context.Background(), &AssessClaimRequest{Claim: validClaim()})
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("investigator cannot assess", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.AssessClaim(contextWithRoles(auth.RoleInvestigator), &AssessClaimRequest{Claim: validClaim()})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.AssessClaim(contextWithRoles(auth.RoleAdmin), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)

		_, err = env.handler.AssessClaim(contextWithRoles(auth.RoleAdmin), &AssessClaimRequest{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("validation problems return InvalidArgument", func(t *testing.T) {
		env := buildTestHandler()
		claim := validClaim()
		claim.FarmerID = ""
		claim.SowingDate = "2024-07-01"

		_, err := env.handler.AssessClaim(contextWithRoles(auth.RoleAdjuster), &AssessClaimRequest{Claim: claim})

		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "farmer ID is required")
		assert.Contains(t, err.Error(), "sowing date must not be after claim date")
	})

	t.Run("scores and stores the claim", func(t *testing.T) {
		env := buildTestHandler()

		resp, err := env.handler.AssessClaim(contextWithRoles(auth.RoleAPIClient), &AssessClaimRequest{Claim: validClaim()})

		require.NoError(t, err)
		require.NotNil(t, resp.Assessment)
		assert.Equal(t, testutil.TestClaimID1.String(), resp.Assessment.ClaimID)
		assert.Equal(t, "LOW", resp.Assessment.RiskLevel)
		assert.False(t, resp.Assessment.AutoReject)
		assert.NotEmpty(t, resp.Assessment.AssessedAt)
		require.NotNil(t, resp.Assessment.SubScores)

		id, err := uuid.Parse(resp.Assessment.ID)
		require.NoError(t, err)
		_, err = env.repo.FindByID(context.Background(), id)
		assert.NoError(t, err)
		assert.Len(t, env.events.Events(), 1)
	})
}

func TestGetAssessment(t *testing.T) {
	t.Run("invalid id returns InvalidArgument", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.GetAssessment(contextWithRoles(auth.RoleInvestigator), &GetAssessmentRequest{ID: "not-a-uuid"})
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid id")
	})

	t.Run("unknown id returns NotFound", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.GetAssessment(contextWithRoles(auth.RoleInvestigator), &GetAssessmentRequest{ID: uuid.NewString()})
		requireGRPCCode(t, err, codes.NotFound)
	})

	t.Run("returns a stored assessment", func(t *testing.T) {
		env := buildTestHandler()
		created, err := env.handler.AssessClaim(contextWithRoles(auth.RoleAdmin), &AssessClaimRequest{Claim: validClaim()})
		require.NoError(t, err)

		got, err := env.handler.GetAssessment(contextWithRoles(auth.RoleInvestigator), &GetAssessmentRequest{ID: created.Assessment.ID})

		require.NoError(t, err)
		assert.Equal(t, created.Assessment.ID, got.Assessment.ID)
		assert.Equal(t, created.Assessment.FraudScore, got.Assessment.FraudScore)
	})
}

func TestListFarmerAssessments(t *testing.T) {
	t.Run("api clients cannot list", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.ListFarmerAssessments(contextWithRoles(auth.RoleAPIClient), &ListFarmerAssessmentsRequest{FarmerID: "F-1"})
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("missing farmer returns InvalidArgument", func(t *testing.T) {
		env := buildTestHandler()
		_, err := env.handler.ListFarmerAssessments(contextWithRoles(auth.RoleAdmin), &ListFarmerAssessmentsRequest{})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("pages newest first", func(t *testing.T) {
		env := buildTestHandler()
		ctx := contextWithRoles(auth.RoleAdmin)
		var ids []string
		for range 3 {
			claim := validClaim()
			claim.ClaimID = uuid.NewString()
			resp, err := env.handler.AssessClaim(ctx, &AssessClaimRequest{Claim: claim})
			require.NoError(t, err)
			ids = append(ids, resp.Assessment.ID)
		}

		page, err := env.handler.ListFarmerAssessments(ctx, &ListFarmerAssessmentsRequest{
			FarmerID: testutil.TestFarmerID,
			PageSize: 2,
		})

		require.NoError(t, err)
		require.Len(t, page.Assessments, 2)
		assert.Equal(t, ids[2], page.Assessments[0].ID)
		assert.Equal(t, int32(2), page.PageSize)
	})

	t.Run("default page size", func(t *testing.T) {
		env := buildTestHandler()
		page, err := env.handler.ListFarmerAssessments(contextWithRoles(auth.RoleAdmin), &ListFarmerAssessmentsRequest{FarmerID: "F-9"})
		require.NoError(t, err)
		assert.Empty(t, page.Assessments)
		assert.Equal(t, int32(20), page.PageSize)
	})
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{err: &service.ValidationError{Problems: []string{"farmer ID is required"}}, code: codes.InvalidArgument},
		{err: fmt.Errorf("failed to find assessment: %w", port.ErrAssessmentNotFound), code: codes.NotFound},
		{err: fmt.Errorf("failed to assess claim: %w", context.Canceled), code: codes.Canceled},
		{err: context.DeadlineExceeded, code: codes.DeadlineExceeded},
		{err: errors.New("connection reset"), code: codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			requireGRPCCode(t, toStatus(tt.err), tt.code)
		})
	}
}
