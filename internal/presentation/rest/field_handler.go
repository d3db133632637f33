package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayanth2212/AgriSure/internal/application/dto"
	"github.com/jayanth2212/AgriSure/internal/application/usecase"
	"github.com/jayanth2212/AgriSure/internal/domain/service"
)

// FieldHandler serves field boundary registration.
type FieldHandler struct {
	registerField *usecase.RegisterField
	logger        *slog.Logger
}

func NewFieldHandler(registerField *usecase.RegisterField, logger *slog.Logger) *FieldHandler {
	return &FieldHandler{registerField: registerField, logger: logger}
}

// Register handles POST /v1/farmers/:farmerID/fields. The body is the GeoJSON
// polygon itself.
func (h *FieldHandler) Register(c *gin.Context) {
	boundary, err := c.GetRawData()
	if err != nil || !json.Valid(boundary) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a GeoJSON polygon"})
		return
	}

	resp, err := h.registerField.Execute(c.Request.Context(), dto.RegisterFieldRequest{
		FarmerID: c.Param("farmerID"),
		Boundary: boundary,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "problems": verr.Problems})
			return
		}
		h.logger.Error("failed to register field", "farmer_id", c.Param("farmerID"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
