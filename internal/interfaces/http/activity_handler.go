package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
)

// ActivityHandler lectura del registro de actividad.
type ActivityHandler struct {
	uc *usecase.ActivityLog
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityLog) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar actividades, más reciente primero
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ActivityResponse, 0, len(items))
	for i := range items {
		out = append(out, *dto.FromActivity(&items[i]))
	}
	return c.JSON(dto.ActivityListResponse{Items: out, Total: len(out)})
}
