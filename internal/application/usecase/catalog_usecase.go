package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/domain"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
)

// CatalogUseCase es el motor de overlay del catálogo: fusiona el snapshot remoto de
// solo lectura con el set local mutable, la tabla de overrides y el set de tombstones,
// y enruta cada mutación a la tabla dueña según el namespace del id del producto.
//
// Reglas de la fusión:
//   - un id con tombstone queda excluido aunque exista un override para él;
//   - los overrides se aplican campo a campo sobre el producto del snapshot;
//   - el orden es remoto-luego-local, preservando el orden de origen en cada grupo.
type CatalogUseCase struct {
	store    repository.DocumentStore
	feed     repository.CatalogFeed
	activity *ActivityLog

	feedLimit int

	// Serializa las mutaciones: los read-modify-write sobre overrides, tombstones y
	// set local perderían escrituras si corrieran intercalados con un fetch en vuelo.
	mu sync.Mutex
}

// NewCatalogUseCase construye el motor. feedLimit es el tamaño del snapshot remoto.
func NewCatalogUseCase(store repository.DocumentStore, feed repository.CatalogFeed, activity *ActivityLog, feedLimit int) *CatalogUseCase {
	if feedLimit <= 0 {
		feedLimit = 100
	}
	return &CatalogUseCase{store: store, feed: feed, activity: activity, feedLimit: feedLimit}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// ListMerged devuelve la vista fusionada. Stale=true indica que el feed degradó a
// snapshot vacío y la lista contiene solo productos locales.
func (uc *CatalogUseCase) ListMerged(ctx context.Context) (*dto.ProductListResponse, error) {
	items, stale, err := uc.merged(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, *dto.FromProduct(&items[i]))
	}
	return &dto.ProductListResponse{Items: out, Total: len(out), Stale: stale}, nil
}

// GetByID busca un producto en la vista fusionada; nil si no existe o tiene tombstone.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	items, _, err := uc.merged(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return dto.FromProduct(&items[i]), nil
		}
	}
	return nil, nil
}

// merged computa la vista: snapshot − tombstones + overrides, luego el set local.
// Es pura respecto de sus cuatro entradas; no escribe nada.
func (uc *CatalogUseCase) merged(ctx context.Context) ([]entity.Product, bool, error) {
	snapshot, degraded := uc.feed.FetchProducts(ctx, uc.feedLimit)

	overrides, err := uc.loadOverrides(ctx)
	if err != nil {
		return nil, false, err
	}
	tombstones, err := uc.loadTombstones(ctx)
	if err != nil {
		return nil, false, err
	}
	locals, err := uc.loadLocals(ctx)
	if err != nil {
		return nil, false, err
	}

	buried := make(map[string]struct{}, len(tombstones))
	for _, id := range tombstones {
		buried[id] = struct{}{}
	}

	items := make([]entity.Product, 0, len(snapshot)+len(locals))
	for _, p := range snapshot {
		if _, ok := buried[p.ID]; ok {
			continue
		}
		if ov, ok := overrides[p.ID]; ok {
			p.Apply(ov)
		}
		items = append(items, p)
	}
	for _, lp := range locals {
		lp.Source = entity.SourceLocal
		if lp.Title == "" {
			lp.Title = lp.Name
		}
		items = append(items, lp)
	}
	return items, degraded, nil
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// Create crea un producto local. Valida nombre presente y price/stock no negativos.
// actor es el usuario autenticado que queda registrado en la actividad.
func (uc *CatalogUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrValidation
	}
	if in.Stock < 0 {
		return nil, domain.ErrValidation
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	locals, err := uc.loadLocals(ctx)
	if err != nil {
		return nil, err
	}
	p := entity.Product{
		ID:                 entity.NewLocalID(uuid.New().String()),
		Name:               name,
		Title:              name,
		Description:        in.Description,
		Price:              in.Price,
		Brand:              in.Brand,
		CategoryID:         in.CategoryID,
		Thumbnail:          in.Thumbnail,
		Stock:              in.Stock,
		Rating:             in.Rating,
		DiscountPercentage: in.DiscountPercentage,
		Source:             entity.SourceLocal,
		CreatedAt:          time.Now().UTC(),
	}
	locals = append(locals, p)
	if err := uc.store.Set(ctx, repository.KeyLocalProducts, locals); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityProductCreated,
		"Local product "+name+" created", map[string]any{"id": p.ID, "price": p.Price})
	return dto.FromProduct(&p), nil
}

// Update enruta el parche según el namespace del id.
//
// Local: fusiona el parche en el registro almacenado (ErrNotFound si no existe).
// Remoto: acumula el parche campo a campo sobre el override existente; el registro
// remoto en sí nunca se persiste. La respuesta del camino remoto refleja solo el
// override acumulado; la vista completa se obtiene con GetByID/ListMerged.
func (uc *CatalogUseCase) Update(ctx context.Context, actor, rawID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	id, err := entity.ParseProductID(rawID)
	if err != nil {
		return nil, err
	}
	patch := in.ToPatch()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch id.Kind {
	case entity.IDLocal:
		locals, err := uc.loadLocals(ctx)
		if err != nil {
			return nil, err
		}
		for i := range locals {
			if locals[i].ID != id.Value {
				continue
			}
			locals[i].Apply(patch)
			locals[i].UpdatedAt = time.Now().UTC()
			if err := uc.store.Set(ctx, repository.KeyLocalProducts, locals); err != nil {
				return nil, err
			}
			uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityProductUpdated,
				"Local product "+locals[i].Name+" updated", map[string]any{"id": id.Value})
			return dto.FromProduct(&locals[i]), nil
		}
		return nil, domain.ErrNotFound

	default: // entity.IDRemote
		overrides, err := uc.loadOverrides(ctx)
		if err != nil {
			return nil, err
		}
		merged := entity.MergePatch(overrides[id.Value], patch)
		overrides[id.Value] = merged
		if err := uc.store.Set(ctx, repository.KeyProductOverrides, overrides); err != nil {
			return nil, err
		}
		uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityOverride,
			"Remote product "+id.Value+" overridden", map[string]any{"id": id.Value})
		view := entity.Product{ID: id.Value, Source: entity.SourceRemote}
		view.Apply(merged)
		return dto.FromProduct(&view), nil
	}
}

// Remove enruta el borrado según el namespace del id.
//
// Local: borrado duro del set local; id desconocido devuelve (nil, nil).
// Remoto: inserta el id en el set de tombstones — una tumba de un solo sentido,
// ninguna operación la revierte. Repetir el borrado de un id ya enterrado es un
// no-op exitoso, no un error.
func (uc *CatalogUseCase) Remove(ctx context.Context, actor, rawID string) (*dto.ProductResponse, error) {
	id, err := entity.ParseProductID(rawID)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch id.Kind {
	case entity.IDLocal:
		locals, err := uc.loadLocals(ctx)
		if err != nil {
			return nil, err
		}
		var removed *entity.Product
		kept := make([]entity.Product, 0, len(locals))
		for i := range locals {
			if locals[i].ID == id.Value {
				p := locals[i]
				removed = &p
				continue
			}
			kept = append(kept, locals[i])
		}
		if removed == nil {
			return nil, nil
		}
		if err := uc.store.Set(ctx, repository.KeyLocalProducts, kept); err != nil {
			return nil, err
		}
		uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityProductDeleted,
			"Local product "+removed.Name+" deleted", map[string]any{"id": id.Value})
		return dto.FromProduct(removed), nil

	default: // entity.IDRemote
		tombstones, err := uc.loadTombstones(ctx)
		if err != nil {
			return nil, err
		}
		ghost := entity.Product{ID: id.Value, Source: entity.SourceRemote}
		for _, t := range tombstones {
			if t == id.Value {
				// Ya enterrado: idempotente, sin nueva entrada de actividad.
				return dto.FromProduct(&ghost), nil
			}
		}
		tombstones = append(tombstones, id.Value)
		if err := uc.store.Set(ctx, repository.KeyDeletedRemoteIDs, tombstones); err != nil {
			return nil, err
		}
		uc.activity.Record(ctx, actorOrSystem(actor), entity.ActivityRemoteDeleted,
			"Remote product "+id.Value+" marked deleted locally", map[string]any{"id": id.Value})
		return dto.FromProduct(&ghost), nil
	}
}

// actorOrSystem cubre mutaciones sin usuario autenticado (seed, CLI).
func actorOrSystem(actor string) string {
	if actor == "" {
		return "system"
	}
	return actor
}

// ── Acceso a las tablas persistidas ───────────────────────────────────────────

func (uc *CatalogUseCase) loadLocals(ctx context.Context) ([]entity.Product, error) {
	var locals []entity.Product
	if _, err := uc.store.Get(ctx, repository.KeyLocalProducts, &locals); err != nil {
		return nil, err
	}
	return locals, nil
}

func (uc *CatalogUseCase) loadOverrides(ctx context.Context) (map[string]entity.ProductPatch, error) {
	overrides := make(map[string]entity.ProductPatch)
	if _, err := uc.store.Get(ctx, repository.KeyProductOverrides, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (uc *CatalogUseCase) loadTombstones(ctx context.Context) ([]string, error) {
	var tombstones []string
	if _, err := uc.store.Get(ctx, repository.KeyDeletedRemoteIDs, &tombstones); err != nil {
		return nil, err
	}
	return tombstones, nil
}
