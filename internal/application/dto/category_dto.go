package dto

import (
	"time"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest parche parcial de categoría.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
}

// ToPatch traduce la petición al parche de dominio.
func (r UpdateCategoryRequest) ToPatch() entity.CategoryPatch {
	return entity.CategoryPatch{Name: r.Name}
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// FromCategory construye la respuesta desde la entidad.
func FromCategory(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
