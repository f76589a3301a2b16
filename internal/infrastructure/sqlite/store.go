package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/mashop-api/internal/domain/repository"
)

// Verificación en tiempo de compilación del puerto.
var _ repository.DocumentStore = (*Store)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    key        TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);`

// Store implementa DocumentStore sobre SQLite. Un solo cliente, un solo writer:
// la conexión se limita a 1 para evitar SQLITE_BUSY, y WAL permite lecturas
// concurrentes mientras se escribe.
type Store struct {
	db *sql.DB
}

// Open crea o abre la base en path y aplica pragmas y esquema. Es idempotente.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar a sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("aplicar %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close cierra la conexión subyacente.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get lee y deserializa el documento bajo key. (false, nil) si no existe.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("leer documento %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("deserializar documento %q: %w", key, err)
	}
	return true, nil
}

// Set serializa value y reemplaza el documento bajo key (upsert, last-write-wins).
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar documento %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`, key, raw)
	if err != nil {
		return fmt.Errorf("escribir documento %q: %w", key, err)
	}
	return nil
}
