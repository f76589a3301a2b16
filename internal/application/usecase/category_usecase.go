package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/domain"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

// Categorías por defecto cuando el feed externo no responde al sembrar.
var fallbackCategories = []entity.Category{
	{ID: "c-1", Name: "Electronics"},
	{ID: "c-2", Name: "Apparel"},
}

// CategoryUseCase CRUD sobre el set de categorías. Se siembra una única vez desde la
// lista de categorías del feed externo, con fallback local si el feed falla.
type CategoryUseCase struct {
	store    repository.DocumentStore
	feed     repository.CatalogFeed
	activity *ActivityLog
	log      *logger.Logger

	// Serializa los read-modify-write sobre la lista persistida.
	mu sync.Mutex

	titler cases.Caser
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(store repository.DocumentStore, feed repository.CatalogFeed, activity *ActivityLog, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		store:    store,
		feed:     feed,
		activity: activity,
		log:      log,
		titler:   cases.Title(language.English),
	}
}

// EnsureSeeded siembra las categorías si la clave aún no existe. Nota: una lista
// vacía persistida cuenta como sembrada; solo la ausencia de la clave dispara el feed.
func (uc *CategoryUseCase) EnsureSeeded(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var cats []entity.Category
	found, err := uc.store.Get(ctx, repository.KeyCategories, &cats)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	now := time.Now().UTC()
	seeds, err := uc.feed.FetchCategories(ctx)
	if err != nil || len(seeds) == 0 {
		if err != nil {
			uc.log.Warn().Err(err).Msg("categorías: feed no disponible, usando fallback")
		}
		cats = make([]entity.Category, 0, len(fallbackCategories))
		for _, c := range fallbackCategories {
			c.CreatedAt = now
			cats = append(cats, c)
		}
		if err := uc.store.Set(ctx, repository.KeyCategories, cats); err != nil {
			return err
		}
		uc.activity.Record(ctx, "system", entity.ActivitySeed, "Seeded fallback categories", nil)
		return nil
	}

	cats = make([]entity.Category, 0, len(seeds))
	for _, s := range seeds {
		name := s.Name
		if name == "" {
			// El formato legado del feed solo trae slugs ("mens-watches").
			name = uc.titler.String(strings.ReplaceAll(s.Slug, "-", " "))
		}
		cats = append(cats, entity.Category{
			ID:        "c-api-" + s.Slug,
			Name:      name,
			CreatedAt: now,
		})
	}
	if err := uc.store.Set(ctx, repository.KeyCategories, cats); err != nil {
		return err
	}
	uc.activity.Record(ctx, "system", entity.ActivitySeed, "Seeded categories from feed", nil)
	return nil
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cats []entity.Category
	if _, err := uc.store.Get(ctx, repository.KeyCategories, &cats); err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *dto.FromCategory(&cats[i]))
	}
	return out, nil
}

// Create crea una categoría. Nombre en blanco => ErrValidation.
func (uc *CategoryUseCase) Create(ctx context.Context, actor string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var cats []entity.Category
	if _, err := uc.store.Get(ctx, repository.KeyCategories, &cats); err != nil {
		return nil, err
	}
	cat := entity.Category{
		ID:        "c-" + uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	cats = append(cats, cat)
	if err := uc.store.Set(ctx, repository.KeyCategories, cats); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityCategoryCreate, "Category "+name+" created", nil)
	return dto.FromCategory(&cat), nil
}

// Update aplica el parche a la categoría. Id desconocido => ErrNotFound.
func (uc *CategoryUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var cats []entity.Category
	if _, err := uc.store.Get(ctx, repository.KeyCategories, &cats); err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].ID != id {
			continue
		}
		cats[i].Apply(in.ToPatch())
		cats[i].UpdatedAt = time.Now().UTC()
		if err := uc.store.Set(ctx, repository.KeyCategories, cats); err != nil {
			return nil, err
		}
		uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityCategoryUpdate, "Category "+cats[i].Name+" updated", map[string]any{"id": id})
		return dto.FromCategory(&cats[i]), nil
	}
	return nil, domain.ErrNotFound
}

// Remove elimina la categoría y la devuelve. Id desconocido es un no-op seguro:
// devuelve (nil, nil), no error.
func (uc *CategoryUseCase) Remove(ctx context.Context, actor, id string) (*dto.CategoryResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var cats []entity.Category
	if _, err := uc.store.Get(ctx, repository.KeyCategories, &cats); err != nil {
		return nil, err
	}
	var removed *entity.Category
	kept := make([]entity.Category, 0, len(cats))
	for i := range cats {
		if cats[i].ID == id {
			c := cats[i]
			removed = &c
			continue
		}
		kept = append(kept, cats[i])
	}
	if removed == nil {
		return nil, nil
	}
	if err := uc.store.Set(ctx, repository.KeyCategories, kept); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityCategoryDelete, "Category "+removed.Name+" deleted", map[string]any{"id": id})
	return dto.FromCategory(removed), nil
}
