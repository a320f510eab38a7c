// Package sqlite implementa el almacenamiento clave-valor local sobre un archivo SQLite
// (modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/listcalc/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SlotStore implementación de repository.SlotStore sobre una tabla kv_slots.
type SlotStore struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path y asegura el esquema.
func Open(ctx context.Context, path string) (*SlotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un único escritor: evita SQLITE_BUSY entre conexiones del pool.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return &SlotStore{db: db, path: path}, nil
}

// Path devuelve la ruta del archivo.
func (s *SlotStore) Path() string { return s.path }

// Get obtiene el valor de la clave.
func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	return []byte(value), true, nil
}

// Put inserta o reemplaza el valor en una sola sentencia.
func (s *SlotStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("put slot: %w", err)
	}
	return nil
}

// Delete elimina la clave.
func (s *SlotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *SlotStore) Close() error {
	return s.db.Close()
}
