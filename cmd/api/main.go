package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jhoicas/listcalc/internal/bootstrap"
	httpRouter "github.com/jhoicas/listcalc/internal/interfaces/http"
	"github.com/jhoicas/listcalc/pkg/config"
	"github.com/jhoicas/listcalc/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar lista")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	server := httpRouter.NewApp(cfg.App.Name, log, httpRouter.RouterDeps{ListUC: app.ListUC})
	if err := httpRouter.Serve(ctx, server, cfg.HTTP.Addr(), log); err != nil {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}

	log.Info().Msg("aplicación detenida")
}
