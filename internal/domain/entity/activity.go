package entity

import "time"

// Tipos de actividad registrados por los stores.
const (
	ActivityLogin          = "login"
	ActivitySeed           = "seed"
	ActivityUserCreated    = "user:created"
	ActivityUserUpdated    = "user:updated"
	ActivityUserDeleted    = "user:deleted"
	ActivityCategoryCreate = "category:created"
	ActivityCategoryUpdate = "category:updated"
	ActivityCategoryDelete = "category:deleted"
	ActivityProductCreated = "product:created"
	ActivityProductUpdated = "product:updated"
	ActivityProductDeleted = "product:deleted"
	ActivityOverride       = "product:override"
	ActivityRemoteDeleted  = "product:remote_deleted"
)

// Activity es una entrada inmutable del registro de actividad.
type Activity struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
