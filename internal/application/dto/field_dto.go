package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RegisterFieldRequest registers the outline of a farmer's field.
type RegisterFieldRequest struct {
	FarmerID string          `json:"farmer_id"`
	Boundary json.RawMessage `json:"boundary"`
}

type RegisterFieldResponse struct {
	FieldID  uuid.UUID `json:"field_id"`
	FarmerID string    `json:"farmer_id"`
}
