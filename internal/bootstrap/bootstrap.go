// Package bootstrap arma las dependencias comunes de cmd/api y cmd/listcalc:
// slot configurado, adaptador de persistencia, store y caso de uso ya inicializado.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/listcalc/internal/application/persistence"
	"github.com/jhoicas/listcalc/internal/application/usecase"
	"github.com/jhoicas/listcalc/internal/domain/repository"
	"github.com/jhoicas/listcalc/internal/domain/shoppinglist"
	"github.com/jhoicas/listcalc/internal/infrastructure/kvstore"
	infrapdf "github.com/jhoicas/listcalc/internal/infrastructure/pdf"
	"github.com/jhoicas/listcalc/pkg/config"
	"github.com/jhoicas/listcalc/pkg/logger"
	"github.com/jhoicas/listcalc/pkg/money"
)

// App dependencias listas para usar. Close libera el backend del slot.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	ListUC *usecase.ShoppingListUseCase
	Load   persistence.LoadResult

	slots repository.SlotStore
}

// New abre el slot, carga la lista guardada y construye el caso de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	formatter, err := money.NewFormatter(cfg.Currency.Locale, cfg.Currency.Code)
	if err != nil {
		return nil, fmt.Errorf("formato de moneda: %w", err)
	}

	slots, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento %s: %w", cfg.Storage.Driver, err)
	}
	log.Debug().Str("driver", cfg.Storage.Driver).Str("slot", cfg.Storage.Slot).Msg("almacenamiento abierto")

	uc := usecase.NewShoppingListUseCase(
		shoppinglist.NewStore(),
		persistence.NewAdapter(slots, cfg.Storage.Slot),
		formatter,
		infrapdf.NewMarotoPDFGenerator(),
		log,
		usecase.ShoppingListConfig{StrictSave: cfg.App.StrictSave},
	)
	res := uc.Init(ctx)

	return &App{Config: cfg, Log: log, ListUC: uc, Load: res, slots: slots}, nil
}

// Close cierra el backend del slot.
func (a *App) Close() error {
	return a.slots.Close()
}
