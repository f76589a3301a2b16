// Package dummyjson implementa el cliente del catálogo externo de solo lectura
// (DummyJSON). El contrato del catálogo es fail-soft: un fallo de red o de parseo
// degrada a snapshot vacío en lugar de propagarse, de modo que la vista fusionada
// cae a "solo productos locales" y nunca falla por condiciones de red.
package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

var _ repository.CatalogFeed = (*Client)(nil)

const (
	// DefaultBaseURL endpoint público de DummyJSON.
	DefaultBaseURL = "https://dummyjson.com"
	// defaultTimeout timeout de red por petición.
	defaultTimeout = 15 * time.Second
)

// Client implementa CatalogFeed contra la API REST de DummyJSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Option configura el cliente.
type Option func(*Client)

// WithBaseURL cambia el endpoint (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout cambia el timeout de red.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient construye el cliente. Las llamadas salientes pasan por un rate limiter
// (60 req/min, ráfaga 10) para que un loop de render apretado no castigue la API pública.
func NewClient(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/60), 10),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Formatos de la API DummyJSON ──────────────────────────────────────────────

type feedProduct struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Brand              string          `json:"brand"`
	Category           string          `json:"category"`
	Thumbnail          string          `json:"thumbnail"`
	Stock              int             `json:"stock"`
	Rating             float64         `json:"rating"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

type feedProductsResponse struct {
	Products []feedProduct `json:"products"`
}

// FetchProducts trae el snapshot remoto. Nunca devuelve error: cualquier fallo se
// registra como warning y produce (nil, true).
func (c *Client) FetchProducts(ctx context.Context, limit int) ([]entity.Product, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		c.log.Warn().Err(err).Msg("feed: espera de rate limit cancelada")
		return nil, true
	}

	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)
	var out feedProductsResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("feed: snapshot degradado a vacío")
		return nil, true
	}

	now := time.Now().UTC()
	items := make([]entity.Product, 0, len(out.Products))
	for _, p := range out.Products {
		items = append(items, entity.Product{
			ID:                 entity.RemoteIDFor(p.ID),
			RemoteID:           p.ID,
			Name:               p.Title,
			Title:              p.Title,
			Description:        p.Description,
			Price:              p.Price,
			Brand:              p.Brand,
			Category:           p.Category,
			Thumbnail:          p.Thumbnail,
			Stock:              p.Stock,
			Rating:             p.Rating,
			DiscountPercentage: p.DiscountPercentage,
			Source:             entity.SourceRemote,
			CreatedAt:          now,
		})
	}
	return items, false
}

// FetchCategories trae las categorías del feed. DummyJSON las ha servido en dos
// formatos: array de strings (legado) y array de objetos {slug,name}; se aceptan ambos.
func (c *Client) FetchCategories(ctx context.Context) ([]repository.CategorySeed, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &raw); err != nil {
		return nil, err
	}

	seeds := make([]repository.CategorySeed, 0, len(raw))
	for _, item := range raw {
		var obj struct {
			Slug string `json:"slug"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Slug != "" {
			seeds = append(seeds, repository.CategorySeed{Slug: obj.Slug, Name: obj.Name})
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil && s != "" {
			seeds = append(seeds, repository.CategorySeed{Slug: s})
		}
	}
	return seeds, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("construir petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar al feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("feed respondió %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsear respuesta: %w", err)
	}
	return nil
}
