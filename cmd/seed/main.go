// seed inicializa el almacén de documentos sin levantar el servidor: usuarios demo,
// producto local de muestra y categorías del feed (con fallback si no hay red).
//
// Uso: go run ./cmd/seed [ruta/mashop.db]
// Por defecto usa STORE_PATH o mashop.db en el directorio actual.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/mashop-api/internal/application/seed"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/infrastructure/dummyjson"
	"github.com/jhoicas/mashop-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/mashop-api/pkg/config"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	path := cfg.Store.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	store, err := sqlite.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("abrir almacén de documentos")
	}
	defer store.Close()

	feed := dummyjson.NewClient(log,
		dummyjson.WithBaseURL(cfg.Feed.BaseURL),
		dummyjson.WithTimeout(cfg.Feed.Timeout),
	)
	activityUC := usecase.NewActivityLog(store, log)
	categoryUC := usecase.NewCategoryUseCase(store, feed, activityUC, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed.New(store, activityUC, categoryUC, log).EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("siembra")
	}
	log.Info().Str("path", path).Msg("almacén sembrado")
}
