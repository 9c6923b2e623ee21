// seed carga las categorías desde un catálogo XML y, opcionalmente, crea el usuario admin inicial.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Admin: SEED_ADMIN_EMAIL, SEED_ADMIN_USERNAME, SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/postgres"
	"github.com/jhoicas/suplegear-api/pkg/config"
	"github.com/jhoicas/suplegear-api/pkg/logger"
	"github.com/jhoicas/suplegear-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	uow := postgres.NewTxRunner(pool)

	if len(os.Args) > 1 {
		path := os.Args[1]
		f, err := os.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("abrir catálogo")
		}
		requests, err := parseCatalog(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("leer catálogo")
		}
		created, skipped, err := importCategories(ctx, usecase.NewCategoryUseCase(uow), requests)
		if err != nil {
			log.Fatal().Err(err).Msg("importar categorías")
		}
		log.Info().Int("creadas", created).Int("existentes", skipped).Msg("catálogo importado")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		return
	}
	users := usecase.NewUserUseCase(uow, password.NewHasher(cfg.Security.BcryptCost))
	admin, err := users.Create(ctx, dto.CreateUserRequest{
		Email:    email,
		Username: os.Getenv("SEED_ADMIN_USERNAME"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	}, entity.RoleAdmin)
	switch {
	case domain.KindOf(err) == domain.KindDuplicateResource:
		log.Info().Str("email", email).Msg("admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear admin")
	default:
		log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("admin creado")
	}
}

type categoryCreator interface {
	GetByName(ctx context.Context, name string) (*dto.CategoryResponse, error)
	Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
}

// importCategories crea las categorías que no existen. Es idempotente.
func importCategories(ctx context.Context, categories categoryCreator, requests []dto.CreateCategoryRequest) (created, skipped int, err error) {
	for _, req := range requests {
		existing, err := categories.GetByName(ctx, req.Name)
		if err != nil {
			return created, skipped, err
		}
		if existing != nil {
			skipped++
			continue
		}
		if _, err := categories.Create(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
