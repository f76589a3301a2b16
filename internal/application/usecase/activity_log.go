package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

// ActivityLog registro append-only de mutaciones de todos los stores. Las entradas
// se guardan más reciente primero; no hay compactación, retención ni borrado.
type ActivityLog struct {
	store repository.DocumentStore
	log   *logger.Logger

	// Serializa el read-modify-write sobre el documento de actividades: lo escriben
	// todos los stores y sus mutex propios no se cubren entre sí.
	mu sync.Mutex
}

// NewActivityLog construye el registro de actividad.
func NewActivityLog(store repository.DocumentStore, log *logger.Logger) *ActivityLog {
	return &ActivityLog{store: store, log: log}
}

// Append genera id y timestamp y antepone la entrada al registro persistido.
func (l *ActivityLog) Append(ctx context.Context, actor, typ, message string, details map[string]any) (*entity.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var activities []entity.Activity
	if _, err := l.store.Get(ctx, repository.KeyActivities, &activities); err != nil {
		return nil, err
	}
	entry := entity.Activity{
		ID:        "a-" + uuid.New().String(),
		Actor:     actor,
		Type:      typ,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	activities = append([]entity.Activity{entry}, activities...)
	if err := l.store.Set(ctx, repository.KeyActivities, activities); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List devuelve el registro completo, más reciente primero.
func (l *ActivityLog) List(ctx context.Context) ([]entity.Activity, error) {
	var activities []entity.Activity
	if _, err := l.store.Get(ctx, repository.KeyActivities, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Record es Append para uso de los demás stores: la mutación que origina la entrada
// ya se confirmó, así que un fallo al registrarla no debe deshacerla ni propagarse;
// se deja constancia como warning.
func (l *ActivityLog) Record(ctx context.Context, actor, typ, message string, details map[string]any) {
	if _, err := l.Append(ctx, actor, typ, message, details); err != nil {
		l.log.Warn().Err(err).Str("type", typ).Msg("no se pudo registrar la actividad")
	}
}
