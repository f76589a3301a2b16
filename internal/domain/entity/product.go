package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen de un producto dentro de la vista fusionada.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Product representa un producto del catálogo. Los productos locales viven completos
// en el almacén de documentos; los remotos se recomputan en cada lectura a partir del
// snapshot del feed más los overrides y tombstones persistidos.
// Los tags JSON definen tanto la forma persistida como la de respuesta.
type Product struct {
	ID                 string          `json:"id"`
	RemoteID           int64           `json:"remoteId,omitempty"` // id numérico del feed; 0 si es local
	Name               string          `json:"name"`
	Title              string          `json:"title"` // se mantiene sincronizado con Name
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Brand              string          `json:"brand"`
	CategoryID         string          `json:"categoryId,omitempty"` // referencia laxa, sin integridad referencial
	Category           string          `json:"category,omitempty"`   // slug libre que entrega el feed
	Thumbnail          string          `json:"thumbnail"`
	Stock              int             `json:"stock"`
	Rating             float64         `json:"rating"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Source             string          `json:"source"` // local | remote
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt,omitempty"`
}

// ProductPatch es un parche parcial por campo. Es también el formato persistido de un
// override de producto remoto: los campos nil conservan el valor previo, y overrides
// sucesivos se acumulan campo a campo (nunca se reemplazan en bloque).
type ProductPatch struct {
	Name               *string          `json:"name,omitempty"`
	Title              *string          `json:"title,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	Brand              *string          `json:"brand,omitempty"`
	CategoryID         *string          `json:"categoryId,omitempty"`
	Thumbnail          *string          `json:"thumbnail,omitempty"`
	Stock              *int             `json:"stock,omitempty"`
	Rating             *float64         `json:"rating,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
}

// SyncTitle propaga Name al campo Title para mantener ambos campos de
// visualización sincronizados. Debe llamarse antes de aplicar o fusionar el parche.
func (p *ProductPatch) SyncTitle() {
	if p.Name != nil {
		p.Title = p.Name
	}
}

// Apply aplica el parche campo a campo sobre el producto.
func (pr *Product) Apply(p ProductPatch) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Brand != nil {
		pr.Brand = *p.Brand
	}
	if p.CategoryID != nil {
		pr.CategoryID = *p.CategoryID
	}
	if p.Thumbnail != nil {
		pr.Thumbnail = *p.Thumbnail
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	if p.Rating != nil {
		pr.Rating = *p.Rating
	}
	if p.DiscountPercentage != nil {
		pr.DiscountPercentage = *p.DiscountPercentage
	}
}

// MergePatch acumula over sobre base: cada campo presente en over gana, los ausentes
// conservan lo que hubiera en base. Ninguno de los argumentos se modifica.
func MergePatch(base, over ProductPatch) ProductPatch {
	out := base
	if over.Name != nil {
		out.Name = over.Name
	}
	if over.Title != nil {
		out.Title = over.Title
	}
	if over.Description != nil {
		out.Description = over.Description
	}
	if over.Price != nil {
		out.Price = over.Price
	}
	if over.Brand != nil {
		out.Brand = over.Brand
	}
	if over.CategoryID != nil {
		out.CategoryID = over.CategoryID
	}
	if over.Thumbnail != nil {
		out.Thumbnail = over.Thumbnail
	}
	if over.Stock != nil {
		out.Stock = over.Stock
	}
	if over.Rating != nil {
		out.Rating = over.Rating
	}
	if over.DiscountPercentage != nil {
		out.DiscountPercentage = over.DiscountPercentage
	}
	return out
}
