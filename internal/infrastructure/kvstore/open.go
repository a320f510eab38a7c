// Package kvstore elige el backend del slot según STORAGE_DRIVER.
package kvstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/listcalc/internal/domain/repository"
	"github.com/jhoicas/listcalc/internal/infrastructure/memory"
	"github.com/jhoicas/listcalc/internal/infrastructure/postgres"
	"github.com/jhoicas/listcalc/internal/infrastructure/redis"
	"github.com/jhoicas/listcalc/internal/infrastructure/sqlite"
	"github.com/jhoicas/listcalc/pkg/config"
)

// Open abre el SlotStore configurado. El llamador debe invocar Close.
func Open(ctx context.Context, cfg *config.Config) (repository.SlotStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		r, err := postgres.OpenSlotRepository(ctx, pool)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.Redis.URL, cfg.App.Name+":")
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.NewSlotStore(), nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
	}
}
