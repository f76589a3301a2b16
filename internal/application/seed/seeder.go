// Package seed puebla el almacén en el primer arranque: usuarios demo, un producto
// local de muestra, el registro de actividad vacío y las categorías desde el feed.
// Cada bloque se siembra solo si su clave aún no existe; re-ejecutar es inocuo.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/pkg/logger"
)

// Seeder siembra el estado inicial de la tienda.
type Seeder struct {
	store      repository.DocumentStore
	activity   *usecase.ActivityLog
	categories *usecase.CategoryUseCase
	log        *logger.Logger
}

// New construye el seeder.
func New(store repository.DocumentStore, activity *usecase.ActivityLog, categories *usecase.CategoryUseCase, log *logger.Logger) *Seeder {
	return &Seeder{store: store, activity: activity, categories: categories, log: log}
}

type demoUser struct {
	id        string
	username  string
	password  string
	firstName string
	lastName  string
	role      string
}

var demoUsers = []demoUser{
	{id: "u-admin", username: "admin", password: "123456", firstName: "Site", lastName: "Admin", role: entity.RoleAdmin},
	{id: "u-emilys", username: "emilys", password: "123456", firstName: "Emily", lastName: "S", role: entity.RoleAdmin},
	{id: "u-michaelw", username: "michaelw", password: "michaelwpass", firstName: "Michael", lastName: "W", role: entity.RoleUser},
}

// EnsureSeeded siembra usuarios, producto demo, actividades y categorías si faltan.
func (s *Seeder) EnsureSeeded(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedLocalProducts(ctx); err != nil {
		return err
	}
	if err := s.ensureActivities(ctx); err != nil {
		return err
	}
	return s.categories.EnsureSeeded(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	var users []entity.User
	found, err := s.store.Get(ctx, repository.KeyUsers, &users)
	if err != nil || found {
		return err
	}

	now := time.Now().UTC()
	users = make([]entity.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users = append(users, entity.User{
			ID:           d.id,
			Username:     d.username,
			PasswordHash: string(hash),
			FirstName:    d.firstName,
			LastName:     d.lastName,
			Role:         d.role,
			Avatar:       "https://dummyjson.com/icon/" + d.username + "/128",
			CreatedAt:    now,
		})
	}
	if err := s.store.Set(ctx, repository.KeyUsers, users); err != nil {
		return err
	}
	s.activity.Record(ctx, "system", entity.ActivitySeed, "Seeded initial users", nil)
	s.log.Info().Int("users", len(users)).Msg("usuarios demo sembrados")
	return nil
}

func (s *Seeder) seedLocalProducts(ctx context.Context) error {
	var locals []entity.Product
	found, err := s.store.Get(ctx, repository.KeyLocalProducts, &locals)
	if err != nil || found {
		return err
	}

	now := time.Now().UTC()
	locals = []entity.Product{{
		ID:                 entity.NewLocalID(uuid.New().String()),
		Name:               "Demo Headphones",
		Title:              "Demo Headphones",
		Description:        "High-quality demo headphones with excellent sound",
		Price:              decimal.NewFromFloat(59.99),
		Brand:              "DemoBrand",
		Stock:              10,
		Thumbnail:          "https://via.placeholder.com/400x400?text=Demo+Headphones",
		Rating:             4.5,
		DiscountPercentage: decimal.NewFromInt(10),
		Source:             entity.SourceLocal,
		CreatedAt:          now,
	}}
	if err := s.store.Set(ctx, repository.KeyLocalProducts, locals); err != nil {
		return err
	}
	s.activity.Record(ctx, "system", entity.ActivitySeed, "Seeded initial local products", nil)
	return nil
}

func (s *Seeder) ensureActivities(ctx context.Context) error {
	var activities []entity.Activity
	found, err := s.store.Get(ctx, repository.KeyActivities, &activities)
	if err != nil || found {
		return err
	}
	return s.store.Set(ctx, repository.KeyActivities, []entity.Activity{})
}
