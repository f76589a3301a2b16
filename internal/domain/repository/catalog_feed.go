package repository

import (
	"context"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
)

// CategorySeed es una categoría tal como la entrega el feed externo.
type CategorySeed struct {
	Slug string
	Name string
}

// CatalogFeed define el puerto hacia el catálogo externo de solo lectura.
// El feed no es fuente de verdad local: sus productos nunca se persisten, solo los
// overrides y tombstones que los modifican.
type CatalogFeed interface {
	// FetchProducts devuelve el snapshot remoto con el namespace ya aplicado a los
	// ids. Nunca devuelve error: ante cualquier fallo de transporte o parseo entrega
	// un snapshot vacío con degraded=true, para que el caller pueda distinguir
	// "catálogo vacío" de "feed caído" sin romper el contrato fail-soft.
	FetchProducts(ctx context.Context, limit int) (items []entity.Product, degraded bool)
	// FetchCategories devuelve la lista de categorías del feed. Se consulta una sola
	// vez, al sembrar el store de categorías; aquí sí se propaga el error porque el
	// caller tiene un fallback propio.
	FetchCategories(ctx context.Context) ([]CategorySeed, error)
}
