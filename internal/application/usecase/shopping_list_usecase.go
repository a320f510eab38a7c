package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/listcalc/internal/application/dto"
	"github.com/jhoicas/listcalc/internal/application/persistence"
	"github.com/jhoicas/listcalc/internal/domain"
	"github.com/jhoicas/listcalc/internal/domain/entity"
	"github.com/jhoicas/listcalc/internal/domain/shoppinglist"
	"github.com/jhoicas/listcalc/pkg/logger"
	"github.com/jhoicas/listcalc/pkg/money"
)

// ShoppingListConfig opciones del caso de uso.
type ShoppingListConfig struct {
	Title      string // título del PDF
	StrictSave bool   // true: un fallo al guardar se devuelve como domain.ErrPersistence
}

// ShoppingListUseCase orquesta la lista en memoria y su persistencia.
// Cada acción se ejecuta bajo un mutex (un único hilo lógico) y cada mutación
// exitosa guarda la lista completa una vez, sin agrupar escrituras.
type ShoppingListUseCase struct {
	mu       sync.Mutex
	store    *shoppinglist.Store
	persist  *persistence.Adapter
	money    *money.Formatter
	pdf      ListPDFGenerator
	log      *logger.Logger
	cfg      ShoppingListConfig
	revision uint64
	now      func() time.Time
}

// NewShoppingListUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewShoppingListUseCase(
	store *shoppinglist.Store,
	persist *persistence.Adapter,
	formatter *money.Formatter,
	pdf ListPDFGenerator,
	log *logger.Logger,
	cfg ShoppingListConfig,
) *ShoppingListUseCase {
	if cfg.Title == "" {
		cfg.Title = "Lista de compras"
	}
	uc := &ShoppingListUseCase{
		store:   store,
		persist: persist,
		money:   formatter,
		pdf:     pdf,
		log:     log,
		cfg:     cfg,
		now:     time.Now,
	}
	store.Subscribe(func(items []entity.Item) {
		uc.revision++
		uc.log.Debug().
			Uint64("revision", uc.revision).
			Int("count", len(items)).
			Str("total", shoppinglist.Total(items).String()).
			Msg("lista actualizada")
	})
	return uc
}

// Init carga la lista desde el slot. Nunca falla: ante datos ausentes,
// corruptos o ilegibles arranca con la lista vacía y lo registra.
func (uc *ShoppingListUseCase) Init(ctx context.Context) persistence.LoadResult {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	res := uc.persist.Load(ctx)
	switch res.Status {
	case persistence.LoadEmpty:
		uc.log.Info().Str("slot", uc.persist.Key()).Msg("sin datos guardados, lista vacía")
	case persistence.LoadCorrupt:
		uc.log.Warn().Err(res.Err).Str("slot", uc.persist.Key()).Msg("datos guardados corruptos, se descartan")
	case persistence.LoadFailed:
		uc.log.Error().Err(res.Err).Str("slot", uc.persist.Key()).Msg("no se pudo leer la lista guardada")
	default:
		uc.log.Info().Str("slot", uc.persist.Key()).Int("count", len(res.Items)).Msg("lista cargada")
	}
	uc.store.ReplaceAll(res.Items)
	return res
}

// Add agrega un ítem al final y guarda.
func (uc *ShoppingListUseCase) Add(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var item entity.Item
	err := uc.mutate(ctx, func() (err error) {
		item, err = uc.store.Add(in.Name, in.UnitPrice, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(item.ID)
}

// Update reemplaza los campos del ítem (flujo de edición) conservando id y posición.
func (uc *ShoppingListUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	replacement := entity.Item{Name: in.Name, UnitPrice: decimal.Zero, Quantity: decimal.Zero}
	if in.UnitPrice != nil {
		replacement.UnitPrice = *in.UnitPrice
	}
	if in.Quantity != nil {
		replacement.Quantity = *in.Quantity
	}
	err := uc.mutate(ctx, func() error {
		_, err := uc.store.Replace(id, replacement)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(id)
}

// UpdateQuantity fija la cantidad. Una cantidad negativa no modifica nada ni guarda.
func (uc *ShoppingListUseCase) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.updateQuantity(ctx, id, func(decimal.Decimal) decimal.Decimal { return quantity })
}

// IncrementQuantity suma 1 a la cantidad.
func (uc *ShoppingListUseCase) IncrementQuantity(ctx context.Context, id string) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.updateQuantity(ctx, id, func(q decimal.Decimal) decimal.Decimal { return q.Add(decimal.NewFromInt(1)) })
}

// DecrementQuantity resta 1; si el resultado fuera negativo no hace nada.
func (uc *ShoppingListUseCase) DecrementQuantity(ctx context.Context, id string) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.updateQuantity(ctx, id, func(q decimal.Decimal) decimal.Decimal { return q.Sub(decimal.NewFromInt(1)) })
}

func (uc *ShoppingListUseCase) updateQuantity(ctx context.Context, id string, next func(decimal.Decimal) decimal.Decimal) (*dto.ItemResponse, error) {
	current, ok := uc.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	quantity := next(current.Quantity)
	if quantity.IsNegative() {
		// no-op: ni mutación ni escritura
		return uc.itemResponse(id)
	}
	err := uc.mutate(ctx, func() error {
		_, err := uc.store.UpdateQuantity(id, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.itemResponse(id)
}

// Delete elimina el ítem por id.
func (uc *ShoppingListUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mutate(ctx, func() error { return uc.store.Remove(id) })
}

// DeleteAt elimina el ítem en la posición indicada (base 0, orden de la lista completa).
func (uc *ShoppingListUseCase) DeleteAt(ctx context.Context, index int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mutate(ctx, func() error { return uc.store.RemoveAt(index) })
}

// Clear vacía la lista y guarda.
func (uc *ShoppingListUseCase) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.mutate(ctx, func() error {
		uc.store.Clear()
		return nil
	})
}

// Reset borra el slot guardado y vacía la lista en memoria.
func (uc *ShoppingListUseCase) Reset(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.persist.Reset(ctx); err != nil {
		return err
	}
	uc.store.Clear()
	uc.log.Info().Str("slot", uc.persist.Key()).Msg("slot borrado")
	return nil
}

// Get obtiene un ítem por id.
func (uc *ShoppingListUseCase) Get(id string) (*dto.ItemResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.itemResponse(id)
}

// List devuelve los ítems que coinciden con query; Count y Total son de la lista completa.
func (uc *ShoppingListUseCase) List(query string) *dto.ItemListResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	positions := uc.store.Match(query)
	out := make([]dto.ItemResponse, 0, len(positions))
	for _, pos := range positions {
		it, _ := uc.store.At(pos)
		out = append(out, *uc.toItemResponse(it, pos))
	}
	total := uc.store.Total()
	return &dto.ItemListResponse{
		Items:          out,
		Query:          query,
		Matched:        len(out),
		Count:          uc.store.Count(),
		Total:          total,
		TotalFormatted: uc.money.Format(total),
	}
}

// Summary devuelve total, conteo y revisión.
func (uc *ShoppingListUseCase) Summary() dto.SummaryResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	total := uc.store.Total()
	return dto.SummaryResponse{
		Count:          uc.store.Count(),
		Total:          total,
		TotalFormatted: uc.money.Format(total),
		Revision:       uc.revision,
	}
}

// ExportPDF genera el PDF de la lista completa.
// Retorna domain.ErrInvalidInput si no hay generador configurado.
func (uc *ShoppingListUseCase) ExportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("exportación PDF no configurada: %w", domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	now := uc.now()
	items := uc.store.Items()
	total := uc.store.Total()
	uc.mu.Unlock()

	doc := ListDocument{
		Title:       uc.cfg.Title,
		GeneratedAt: now,
		Count:       len(items),
		Total:       uc.money.Format(total),
		Lines:       make([]ListDocumentLine, 0, len(items)),
	}
	for _, it := range items {
		doc.Lines = append(doc.Lines, ListDocumentLine{
			Quantity:  strconv.FormatInt(it.DisplayQuantity(), 10),
			Name:      it.Name,
			UnitPrice: uc.money.Format(it.UnitPrice),
			LineTotal: uc.money.Format(it.LineTotal()),
		})
	}

	b, err := uc.pdf.GenerateListPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar lista: %w", err)
	}
	return b, fmt.Sprintf("lista-%s.pdf", now.Format("20060102-150405")), nil
}

// mutate aplica fn al store y guarda. Si fn falla no se guarda nada; si el
// guardado falla en modo estricto se restaura la lista previa, de modo que
// memoria y slot no divergen.
func (uc *ShoppingListUseCase) mutate(ctx context.Context, fn func() error) error {
	snapshot := uc.store.Items()
	if err := fn(); err != nil {
		return err
	}
	if err := uc.save(ctx); err != nil {
		uc.store.ReplaceAll(snapshot)
		return err
	}
	return nil
}

// save persiste la lista completa. Por defecto solo registra el fallo.
func (uc *ShoppingListUseCase) save(ctx context.Context) error {
	err := uc.persist.Save(ctx, uc.store.Items())
	if err == nil {
		return nil
	}
	uc.log.Error().Err(err).Str("slot", uc.persist.Key()).Msg("guardar lista")
	if uc.cfg.StrictSave {
		return err
	}
	return nil
}

// itemResponse arma la respuesta del ítem con ese id, incluida su posición.
func (uc *ShoppingListUseCase) itemResponse(id string) (*dto.ItemResponse, error) {
	pos, ok := uc.store.Position(id)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	it, _ := uc.store.At(pos)
	return uc.toItemResponse(it, pos), nil
}

func (uc *ShoppingListUseCase) toItemResponse(it entity.Item, index int) *dto.ItemResponse {
	line := it.LineTotal()
	return &dto.ItemResponse{
		ID:                 it.ID,
		Index:              index,
		Name:               it.Name,
		UnitPrice:          it.UnitPrice,
		Quantity:           it.Quantity,
		QuantityDisplay:    it.DisplayQuantity(),
		LineTotal:          line,
		LineTotalFormatted: uc.money.Format(line),
	}
}
