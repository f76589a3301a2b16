package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto local.
type CreateProductRequest struct {
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	CategoryID         string          `json:"categoryId"`
	Brand              string          `json:"brand"`
	Stock              int             `json:"stock"`
	Thumbnail          string          `json:"thumbnail"`
	Description        string          `json:"description"`
	Rating             float64         `json:"rating"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

// UpdateProductRequest parche parcial; aplica tanto a productos locales como a
// overrides de productos remotos.
type UpdateProductRequest struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	Brand              *string          `json:"brand,omitempty"`
	CategoryID         *string          `json:"categoryId,omitempty"`
	Thumbnail          *string          `json:"thumbnail,omitempty"`
	Stock              *int             `json:"stock,omitempty"`
	Rating             *float64         `json:"rating,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
}

// ToPatch convierte la petición al parche de dominio. Title no se expone en la API:
// se deriva siempre de Name (SyncTitle) para mantener ambos campos alineados.
func (r UpdateProductRequest) ToPatch() entity.ProductPatch {
	p := entity.ProductPatch{
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		Brand:              r.Brand,
		CategoryID:         r.CategoryID,
		Thumbnail:          r.Thumbnail,
		Stock:              r.Stock,
		Rating:             r.Rating,
		DiscountPercentage: r.DiscountPercentage,
	}
	p.SyncTitle()
	return p
}

// ProductResponse salida de un producto (local o fusionado).
type ProductResponse struct {
	ID                 string          `json:"id"`
	RemoteID           int64           `json:"remoteId,omitempty"`
	Name               string          `json:"name"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Brand              string          `json:"brand"`
	CategoryID         string          `json:"categoryId,omitempty"`
	Category           string          `json:"category,omitempty"`
	Thumbnail          string          `json:"thumbnail"`
	Stock              int             `json:"stock"`
	Rating             float64         `json:"rating"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Source             string          `json:"source"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt,omitempty"`
}

// ProductListResponse salida de la vista fusionada. Stale indica que el feed externo
// estaba degradado y la lista contiene solo datos locales; vacío ≠ caído.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	Stale bool              `json:"stale"`
}

// FromProduct construye la respuesta desde la entidad.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:                 p.ID,
		RemoteID:           p.RemoteID,
		Name:               p.Name,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		Brand:              p.Brand,
		CategoryID:         p.CategoryID,
		Category:           p.Category,
		Thumbnail:          p.Thumbnail,
		Stock:              p.Stock,
		Rating:             p.Rating,
		DiscountPercentage: p.DiscountPercentage,
		Source:             p.Source,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
