package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/listcalc/internal/domain/repository"
)

var _ repository.SlotStore = (*SlotStore)(nil)

// SlotStore implementación en memoria de repository.SlotStore (tests y ejecuciones efímeras).
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotStore construye un almacenamiento vacío.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string][]byte)}
}

// Get devuelve una copia del valor guardado.
func (s *SlotStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put sobrescribe el valor de la clave.
func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

// Delete elimina la clave; no falla si no existe.
func (s *SlotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

// Close no hace nada.
func (s *SlotStore) Close() error { return nil }
