package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/application/usecase"
	"github.com/jayanth2212/AgriSure/internal/domain/port"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

// AssessmentHandler serves the /v1 assessment endpoints.
type AssessmentHandler struct {
	assessClaim   *usecase.AssessClaim
	getAssessment *usecase.GetAssessment
	listFarmer    *usecase.ListFarmerAssessments
	logger        *slog.Logger
}

func NewAssessmentHandler(
	assessClaim *usecase.AssessClaim,
	getAssessment *usecase.GetAssessment,
	listFarmer *usecase.ListFarmerAssessments,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessClaim:   assessClaim,
		getAssessment: getAssessment,
		listFarmer:    listFarmer,
		logger:        logger,
	}
}

// writeError maps use case errors to a status and a JSON {"error": ...} body.
func (h *AssessmentHandler) writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "problems": verr.Problems})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, port.ErrAssessmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "deadline exceeded"})
	default:
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Assess handles POST /v1/assessments.
func (h *AssessmentHandler) Assess(c *gin.Context) {
	var req dto.AssessClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.assessClaim.Execute(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /v1/assessments/:id.
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assessment id"})
		return
	}

	resp, err := h.getAssessment.Execute(c.Request.Context(), dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByFarmer handles GET /v1/farmers/:farmerID/assessments?limit=&offset=.
func (h *AssessmentHandler) ListByFarmer(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	resp, err := h.listFarmer.Execute(c.Request.Context(), dto.ListFarmerAssessmentsRequest{
		FarmerID: c.Param("farmerID"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
