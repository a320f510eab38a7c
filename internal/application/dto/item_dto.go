package dto

import "github.com/shopspring/decimal"

// CreateItemRequest entrada para agregar un ítem. Precio y cantidad son opcionales (0 por defecto).
type CreateItemRequest struct {
	Name      string           `json:"name" validate:"required,notblank,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest entrada del flujo de edición: reemplaza todos los campos del ítem.
type UpdateItemRequest struct {
	Name      string           `json:"name" validate:"required,notblank,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *decimal.Decimal `json:"quantity"`
}

// UpdateQuantityRequest entrada para cambiar solo la cantidad.
// Una cantidad negativa se acepta y se ignora (no-op).
type UpdateQuantityRequest struct {
	Quantity *decimal.Decimal `json:"quantity" validate:"required"`
}

// ItemResponse salida de un ítem. Index es la posición en la lista completa
// (la que usan DELETE /api/items?index=N y "rm --index"), también en resultados filtrados.
type ItemResponse struct {
	ID                 string          `json:"id"`
	Index              int             `json:"index"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           decimal.Decimal `json:"quantity"`
	QuantityDisplay    int64           `json:"quantity_display"`
	LineTotal          decimal.Decimal `json:"line_total"`
	LineTotalFormatted string          `json:"line_total_formatted"`
}

// ItemListResponse lista (posiblemente filtrada). Count y Total son siempre de la lista completa.
type ItemListResponse struct {
	Items          []ItemResponse  `json:"items"`
	Query          string          `json:"query,omitempty"`
	Matched        int             `json:"matched"`
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
}

// SummaryResponse resumen de la lista. Revision cambia con cada mutación.
type SummaryResponse struct {
	Count          int             `json:"count"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	Revision       uint64          `json:"revision"`
}
