package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/suplegear-api/internal/domain"
	"github.com/jhoicas/suplegear-api/pkg/config"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%whey%", likePattern("whey"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
}

func TestDuplicateFor_PorConstraint(t *testing.T) {
	wrap := func(name string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: name})
	}
	assert.True(t, isUniqueViolation(wrap("users_email_key")))
	assert.False(t, isUniqueViolation(errors.New("boom")))

	assert.ErrorIs(t, duplicateFor(wrap("users_email_key")), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, duplicateFor(wrap("users_username_key")), domain.ErrUsernameTaken)
	assert.ErrorIs(t, duplicateFor(wrap("products_sku_key")), domain.ErrSKUAlreadyExists)
	var de *domain.Error
	if assert.ErrorAs(t, duplicateFor(wrap("categories_name_key")), &de) {
		assert.Equal(t, "category", de.Resource)
	}
	assert.ErrorIs(t, duplicateFor(wrap("otro")), domain.ErrDuplicate)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("txn")
	if assert.NotNil(t, v) {
		assert.Equal(t, "txn", *v)
	}
}

// noQuery falla el test si el repositorio llega a la base.
type noQuery struct{ t *testing.T }

func (q noQuery) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.t.Fatal("no debería ejecutar SQL")
	return pgconn.CommandTag{}, nil
}

func (q noQuery) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.t.Fatal("no debería ejecutar SQL")
	return nil, nil
}

func (q noQuery) QueryRow(context.Context, string, ...any) pgx.Row {
	q.t.Fatal("no debería ejecutar SQL")
	return nil
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("3f1c2a9e-8b7d-4c6e-9a5f-1d2e3c4b5a69"))
	assert.False(t, validID("5"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
}

func TestRepos_IDMalFormadoEsInexistente(t *testing.T) {
	ctx := context.Background()
	q := noQuery{t: t}

	cat, err := NewCategoryRepository(q).GetByID(ctx, "5")
	require.NoError(t, err)
	assert.Nil(t, cat)
	assert.NoError(t, NewCategoryRepository(q).Delete(ctx, "abc"))

	prod, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, prod)
	n, err := NewProductRepository(q).CountByCategory(ctx, "5")
	require.NoError(t, err)
	assert.Zero(t, n)
	list, total, err := NewProductRepository(q).ListByCategory(ctx, "5", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	user, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)

	order, err := NewOrderRepository(q).GetByID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Nil(t, order)

	pay, err := NewPaymentRepository(q).GetByOrderID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, pay)
}

func TestPoolConfigFor(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "suplegear", SSLMode: "disable", MaxConns: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.NotNil(t, pc.AfterConnect)

	pc, err = poolConfigFor(config.DBConfig{DatabaseURL: "postgres://x:y@otro:6543/z?sslmode=disable"})
	require.NoError(t, err)
	assert.Equal(t, "otro", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)

	_, err = poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
