package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/mashop-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

// Store implementa DocumentStore en memoria. Se usa en tests en lugar del store
// SQLite; serializa igual que producción (JSON) para que un tipo que no sobrevive
// el round-trip falle también aquí.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New construye un store vacío.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("deserializar documento %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar documento %q: %w", key, err)
	}
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
	return nil
}
