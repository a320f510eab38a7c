// Package persistence guarda y restaura la lista de compras en un único slot
// de un almacenamiento clave-valor.
//
// La carga nunca falla hacia quien la llama: ante datos corruptos o un error
// de lectura devuelve una lista vacía (política fail-empty) y el motivo en
// LoadResult para poder registrarlo.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/listcalc/internal/domain"
	"github.com/jhoicas/listcalc/internal/domain/entity"
	"github.com/jhoicas/listcalc/internal/domain/repository"
)

// LoadStatus describe el resultado de una carga.
type LoadStatus int

const (
	LoadEmpty   LoadStatus = iota // el slot no existe todavía
	LoadOK                        // datos válidos
	LoadCorrupt                   // datos presentes pero inválidos; descartados
	LoadFailed                    // error del backend al leer
)

func (s LoadStatus) String() string {
	switch s {
	case LoadEmpty:
		return "empty"
	case LoadOK:
		return "ok"
	case LoadCorrupt:
		return "corrupt"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult resultado de Load. Items nunca es nil.
type LoadResult struct {
	Status LoadStatus
	Items  []entity.Item
	Err    error
}

// Adapter serializa la lista hacia un slot de un SlotStore.
type Adapter struct {
	slots repository.SlotStore
	key   string
}

// NewAdapter construye el adaptador para la clave indicada.
func NewAdapter(slots repository.SlotStore, key string) *Adapter {
	return &Adapter{slots: slots, key: key}
}

// Key devuelve el nombre del slot.
func (a *Adapter) Key() string { return a.key }

// Save sobrescribe el slot con la lista completa.
func (a *Adapter) Save(ctx context.Context, items []entity.Item) error {
	data, err := Encode(items)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if err := a.slots.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("%w: slot %s: %w", domain.ErrPersistence, a.key, err)
	}
	return nil
}

// Load lee el slot aplicando la política fail-empty.
func (a *Adapter) Load(ctx context.Context) LoadResult {
	data, ok, err := a.slots.Get(ctx, a.key)
	if err != nil {
		return LoadResult{Status: LoadFailed, Items: []entity.Item{}, Err: fmt.Errorf("leer slot %s: %w", a.key, err)}
	}
	if !ok {
		return LoadResult{Status: LoadEmpty, Items: []entity.Item{}}
	}
	items, err := Decode(data)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptData) {
			err = fmt.Errorf("%w: %w", domain.ErrCorruptData, err)
		}
		return LoadResult{Status: LoadCorrupt, Items: []entity.Item{}, Err: err}
	}
	return LoadResult{Status: LoadOK, Items: items}
}

// Reset elimina el slot (usado para descartar datos corruptos de forma explícita).
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.slots.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("%w: borrar slot %s: %w", domain.ErrPersistence, a.key, err)
	}
	return nil
}
