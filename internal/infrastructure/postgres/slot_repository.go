package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/listcalc/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotRepo)(nil)

const createSlotsTable = `
	CREATE TABLE IF NOT EXISTS kv_slots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// SlotRepo implementación del puerto SlotStore sobre PostgreSQL (usable con pool o tx).
type SlotRepo struct {
	q     Querier
	close func()
}

// OpenSlotRepository asegura la tabla sobre el pool y devuelve un repo que cierra el pool en Close.
func OpenSlotRepository(ctx context.Context, pool *pgxpool.Pool) (*SlotRepo, error) {
	r := &SlotRepo{q: pool, close: pool.Close}
	if err := r.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// EnsureSchema crea la tabla kv_slots si no existe.
func (r *SlotRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, createSlotsTable); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}
	return nil
}

// Get obtiene el valor de un slot.
func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.q.QueryRow(ctx, `SELECT value FROM kv_slots WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot: %w", err)
	}
	return []byte(value), true, nil
}

// Put inserta o sobrescribe el slot en una sola sentencia.
func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("put slot: %w", err)
	}
	return nil
}

// Delete elimina el slot.
func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM kv_slots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}

// Close cierra el pool si el repo lo abrió.
func (r *SlotRepo) Close() error {
	if r.close != nil {
		r.close()
	}
	return nil
}
