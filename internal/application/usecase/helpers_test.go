package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/domain/repository"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/memory"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
	"github.com/jhoicas/suplegear-api/pkg/password"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testHasher() *password.Hasher {
	return password.NewHasher(bcrypt.MinCost)
}

func firstPage() pagination.Params {
	return pagination.DefaultLimits().Normalize(1, 20)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed escribe entidades directamente en el store.
func seed(t *testing.T, store *memory.Store, fn func(ctx context.Context, s repository.Store) error) {
	t.Helper()
	require.NoError(t, store.Do(context.Background(), func(s repository.Store) error {
		return fn(context.Background(), s)
	}))
}

func seedCategory(t *testing.T, store *memory.Store, id, name string) {
	t.Helper()
	seed(t, store, func(ctx context.Context, s repository.Store) error {
		return s.Categories().Create(ctx, &entity.Category{ID: id, Name: name, CreatedAt: fixedNow, UpdatedAt: fixedNow})
	})
}

func seedProduct(t *testing.T, store *memory.Store, p entity.Product) {
	t.Helper()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = fixedNow
		p.UpdatedAt = fixedNow
	}
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}
	seed(t, store, func(ctx context.Context, s repository.Store) error {
		return s.Products().Create(ctx, &p)
	})
}
