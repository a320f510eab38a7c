// Package shoppinglist contiene el estado de la lista de compras: la colección
// ordenada de ítems y los cálculos derivados (filtro, total, conteo).
//
// Store no persiste nada. Quien lo usa decide cuándo guardar después de cada
// mutación y puede suscribirse a los cambios con Subscribe.
//
// Store no es seguro para uso concurrente; el caso de uso serializa las acciones.
package shoppinglist

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/listcalc/internal/domain"
	"github.com/jhoicas/listcalc/internal/domain/entity"
)

// Listener recibe una copia de la lista después de cada mutación.
type Listener func(items []entity.Item)

type subscription struct {
	id int
	fn Listener
}

// Store guarda la lista autoritativa y un índice id -> posición.
type Store struct {
	items     []entity.Item
	index     map[string]int
	listeners []subscription
	nextSubID int
	newID     func() string
}

// NewStore crea una lista vacía.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
		newID: func() string { return uuid.New().String() },
	}
}

// Add agrega un ítem al final. Precio y cantidad nil equivalen a 0.
// Rechaza nombres vacíos y valores negativos o fuera de rango con domain.ErrInvalidInput.
func (s *Store) Add(name string, unitPrice, quantity *decimal.Decimal) (entity.Item, error) {
	item := entity.Item{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		UnitPrice: valueOrZero(unitPrice),
		Quantity:  valueOrZero(quantity),
	}
	if err := item.Validate(); err != nil {
		return entity.Item{}, err
	}
	s.items = append(s.items, item)
	if _, dup := s.index[item.ID]; !dup {
		s.index[item.ID] = len(s.items) - 1
	}
	s.notify()
	return item, nil
}

// UpdateQuantity reemplaza solo la cantidad del ítem indicado.
// Una cantidad negativa se ignora sin error; una fuera de rango devuelve
// domain.ErrInvalidInput. Devuelve la lista resultante.
func (s *Store) UpdateQuantity(id string, quantity decimal.Decimal) ([]entity.Item, error) {
	if quantity.IsNegative() {
		return s.Items(), nil
	}
	pos, ok := s.index[id]
	if !ok {
		return s.Items(), fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	if err := entity.CheckAmount("cantidad", quantity); err != nil {
		return s.Items(), err
	}
	s.items[pos].Quantity = quantity
	s.notify()
	return s.Items(), nil
}

// Replace sustituye el ítem con ese id conservando su posición y su id.
func (s *Store) Replace(id string, item entity.Item) ([]entity.Item, error) {
	pos, ok := s.index[id]
	if !ok {
		return s.Items(), fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	item.ID = id
	item.Name = strings.TrimSpace(item.Name)
	if err := item.Validate(); err != nil {
		return s.Items(), err
	}
	s.items[pos] = item
	s.notify()
	return s.Items(), nil
}

// Remove elimina el ítem con ese id.
func (s *Store) Remove(id string) error {
	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	s.removeAt(pos)
	return nil
}

// RemoveAt elimina el ítem en la posición indicada (base 0).
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("posición %d: %w", index, domain.ErrNotFound)
	}
	s.removeAt(index)
	return nil
}

func (s *Store) removeAt(pos int) {
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	s.reindex()
	s.notify()
}

// ReplaceAll sustituye la lista completa (carga desde persistencia).
func (s *Store) ReplaceAll(items []entity.Item) {
	s.items = make([]entity.Item, len(items))
	copy(s.items, items)
	s.reindex()
	s.notify()
}

// Clear vacía la lista.
func (s *Store) Clear() {
	s.items = nil
	s.index = make(map[string]int)
	s.notify()
}

// Get busca un ítem por id.
func (s *Store) Get(id string) (entity.Item, bool) {
	pos, ok := s.index[id]
	if !ok {
		return entity.Item{}, false
	}
	return s.items[pos], true
}

// Position devuelve la posición (base 0) del ítem con ese id en la lista completa.
func (s *Store) Position(id string) (int, bool) {
	pos, ok := s.index[id]
	return pos, ok
}

// Items devuelve una copia de la lista en orden.
func (s *Store) Items() []entity.Item {
	out := make([]entity.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Filter devuelve los ítems cuyo nombre contiene query, sin distinguir
// mayúsculas. Una consulta vacía devuelve toda la lista.
func (s *Store) Filter(query string) []entity.Item {
	positions := s.Match(query)
	out := make([]entity.Item, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.items[pos])
	}
	return out
}

// Match devuelve las posiciones en la lista completa de los ítems que pasan Filter, en orden.
func (s *Store) Match(query string) []int {
	out := make([]int, 0, len(s.items))
	if strings.TrimSpace(query) == "" {
		for i := range s.items {
			out = append(out, i)
		}
		return out
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for i, it := range s.items {
		if strings.Contains(fold.String(it.Name), needle) {
			out = append(out, i)
		}
	}
	return out
}

// At devuelve el ítem en la posición indicada.
func (s *Store) At(pos int) (entity.Item, bool) {
	if pos < 0 || pos >= len(s.items) {
		return entity.Item{}, false
	}
	return s.items[pos], true
}

// Total suma el total de línea de todos los ítems.
func (s *Store) Total() decimal.Decimal {
	return Total(s.items)
}

// Count devuelve la cantidad de ítems.
func (s *Store) Count() int {
	return len(s.items)
}

// Subscribe registra un listener. La función devuelta lo da de baja.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Items()
	for _, sub := range s.listeners {
		sub.fn(snapshot)
	}
}

// reindex reconstruye el índice; ante ids duplicados gana la primera aparición.
func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.items))
	for i, it := range s.items {
		if _, dup := s.index[it.ID]; !dup {
			s.index[it.ID] = i
		}
	}
}

// Total suma UnitPrice * Quantity sobre items.
func Total(items []entity.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
