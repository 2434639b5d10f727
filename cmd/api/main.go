package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/despensa-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/despensa-api/internal/interfaces/http"
	"github.com/jhoicas/despensa-api/pkg/config"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	resolver := catalog.NewResolver(store.products, store.source)
	log.Info().Str("candidate_mode", resolver.Mode()).Msg("fuente de candidatos")

	extractor, transcriber, err := buildAI(cfg.AI, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar proveedor de IA")
	}

	confirmUC := inventory.NewConfirmVoiceUseCase(store.txRunner, resolver, log.Component("confirm"))
	stockViewUC := inventory.NewStockViewUseCase(store.items, store.movements, infrapdf.NewStockListPDF())
	voiceUC := usecase.NewVoiceUseCase(extractor, transcriber, resolver, usecase.VoiceConfig{
		AITimeout:        cfg.AI.Timeout,
		MatchConcurrency: cfg.Match.Concurrency,
	}, log.Component("voice"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.AI.TranscribeMaxSize + 1<<20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: cfg.AI.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Despensa API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Confirm:           confirmUC,
		StockView:         stockViewUC,
		Voice:             voiceUC,
		JWTSecret:         cfg.JWT.Secret,
		ServiceName:       cfg.App.Name,
		TranscribeMaxSize: cfg.AI.TranscribeMaxSize,
		Logger:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
