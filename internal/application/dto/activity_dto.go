package dto

import (
	"time"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// ActivityResponse salida de una entrada del registro de actividad.
type ActivityResponse struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ActivityListResponse lista de actividades, más reciente primero.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Total int                `json:"total"`
}

// FromActivity construye la respuesta desde la entidad.
func FromActivity(a *entity.Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:        a.ID,
		Actor:     a.Actor,
		Type:      a.Type,
		Message:   a.Message,
		Details:   a.Details,
		Timestamp: a.Timestamp,
	}
}
