package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/listcalc/internal/domain"
	"github.com/jhoicas/listcalc/internal/domain/entity"
)

// record es el formato de cada ítem dentro del slot.
// Los campos son punteros para distinguir "ausente" de "valor cero".
type record struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Name      *string         `json:"name"`
	UnitPrice *json.Number    `json:"unitPrice"`
	Quantity  *json.Number    `json:"quantity"`
}

// Encode serializa la lista como arreglo JSON, respetando el orden.
func Encode(items []entity.Item) ([]byte, error) {
	recs := make([]record, 0, len(items))
	for _, it := range items {
		id, err := json.Marshal(it.ID)
		if err != nil {
			return nil, fmt.Errorf("encode id: %w", err)
		}
		name := it.Name
		price := json.Number(it.UnitPrice.String())
		qty := json.Number(it.Quantity.String())
		recs = append(recs, record{ID: id, Name: &name, UnitPrice: &price, Quantity: &qty})
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return b, nil
}

// Decode interpreta el contenido del slot. Cualquier registro inválido (campos
// ausentes, nombre vacío, valores negativos o fuera de rango) invalida todo el
// contenido: devuelve domain.ErrCorruptData y ningún ítem.
func Decode(data []byte) ([]entity.Item, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptData, err)
	}
	if recs == nil {
		return nil, fmt.Errorf("%w: se esperaba un arreglo", domain.ErrCorruptData)
	}
	items := make([]entity.Item, 0, len(recs))
	for i, r := range recs {
		it, err := r.toItem()
		if err != nil {
			return nil, fmt.Errorf("%w: registro %d: %w", domain.ErrCorruptData, i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (r record) toItem() (entity.Item, error) {
	if r.Name == nil {
		return entity.Item{}, fmt.Errorf("falta name")
	}
	if r.UnitPrice == nil {
		return entity.Item{}, fmt.Errorf("falta unitPrice")
	}
	if r.Quantity == nil {
		return entity.Item{}, fmt.Errorf("falta quantity")
	}
	price, err := decimal.NewFromString(r.UnitPrice.String())
	if err != nil {
		return entity.Item{}, fmt.Errorf("unitPrice inválido: %w", err)
	}
	qty, err := decimal.NewFromString(r.Quantity.String())
	if err != nil {
		return entity.Item{}, fmt.Errorf("quantity inválido: %w", err)
	}
	it := entity.Item{
		Name:      *r.Name,
		UnitPrice: price,
		Quantity:  qty,
	}
	// mismas reglas que al agregar: nombre no vacío, valores no negativos y acotados
	if err := it.Validate(); err != nil {
		return entity.Item{}, err
	}
	it.ID = decodeID(r.ID)
	return it, nil
}

// decodeID acepta un id de texto; si falta, es null o vacío genera uno nuevo.
// Un id no textual (p. ej. numérico) se conserva como su representación JSON.
func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return uuid.New().String()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	if strings.TrimSpace(s) == "" {
		return uuid.New().String()
	}
	return s
}
