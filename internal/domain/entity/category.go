package entity

import "time"

// Category representa una categoría de la tienda. Los productos la referencian por
// CategoryID de forma laxa: borrar una categoría no toca los productos.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CategoryPatch parche parcial para Update.
type CategoryPatch struct {
	Name *string `json:"name,omitempty"`
}

// Apply aplica los campos presentes del parche sobre la categoría.
func (c *Category) Apply(p CategoryPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}
