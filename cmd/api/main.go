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

	"github.com/jhoicas/mashop-api/internal/application/auth"
	"github.com/jhoicas/mashop-api/internal/application/seed"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/infrastructure/dummyjson"
	"github.com/jhoicas/mashop-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/mashop-api/internal/interfaces/http"
	"github.com/jhoicas/mashop-api/pkg/config"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	store, err := sqlite.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir almacén de documentos")
	}
	defer store.Close()

	feed := dummyjson.NewClient(log,
		dummyjson.WithBaseURL(cfg.Feed.BaseURL),
		dummyjson.WithTimeout(cfg.Feed.Timeout),
	)

	activityUC := usecase.NewActivityLog(store, log)
	categoryUC := usecase.NewCategoryUseCase(store, feed, activityUC, log)
	catalogUC := usecase.NewCatalogUseCase(store, feed, activityUC, cfg.Feed.Limit)
	authUC := auth.NewAuthUseCase(store, activityUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Siembra inicial: usuarios demo, producto local de muestra y categorías del feed.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.New(store, activityUC, categoryUC, log).EnsureSeeded(seedCtx); err != nil {
		log.Error().Err(err).Msg("siembra inicial incompleta")
	}
	cancelSeed()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware entra en
	// pánico si el archivo no existe, así que solo se registra cuando está.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "MaShop API",
		}))
	} else {
		log.Warn().Str("path", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		CategoryUC: categoryUC,
		ActivityUC: activityUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
