package repository

import "context"

// Claves de los documentos persistidos. Cada tabla lógica vive completa bajo una
// sola clave; la escritura de una clave es atómica, pero no hay transacciones
// que abarquen varias claves.
const (
	KeyUsers            = "mashop_users"
	KeyLocalProducts    = "mashop_local_products"
	KeyProductOverrides = "mashop_product_overrides"
	KeyDeletedRemoteIDs = "mashop_deleted_remote_products"
	KeyCategories       = "mashop_categories"
	KeyActivities       = "mashop_activities"
)

// DocumentStore define el puerto de persistencia clave→documento (DIP).
// Los documentos se serializan como JSON. Semántica last-write-wins, un solo
// cliente; se inyecta en cada componente en lugar de usarse como global.
type DocumentStore interface {
	// Get deserializa el documento bajo key en dest. Devuelve (false, nil) si la
	// clave no existe; dest queda sin tocar en ese caso.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set serializa value y lo escribe bajo key, reemplazando lo que hubiera.
	Set(ctx context.Context, key string, value any) error
}
