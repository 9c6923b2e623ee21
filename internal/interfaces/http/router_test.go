package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/suplegear-api/internal/application/auth"
	"github.com/jhoicas/suplegear-api/internal/application/dto"
	"github.com/jhoicas/suplegear-api/internal/application/usecase"
	"github.com/jhoicas/suplegear-api/internal/domain/entity"
	"github.com/jhoicas/suplegear-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/suplegear-api/internal/interfaces/http"
	"github.com/jhoicas/suplegear-api/pkg/pagination"
	"github.com/jhoicas/suplegear-api/pkg/password"
)

const testPassword = "Sup3rSecreta!"

type apiFixture struct {
	app    *fiber.App
	users  *usecase.UserUseCase
	admin  string
	vendor string
}

type fakeRateStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (s *fakeRateStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key]++
	return s.counts[key], nil
}

func newAPI(t *testing.T, limiter apphttp.RateLimiterStore) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := newTestTokens(t)
	users := usecase.NewUserUseCase(store, hasher)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:            auth.NewAuthUseCase(store, hasher, tokens, nil),
		UserUC:            users,
		ProductUC:         usecase.NewProductUseCase(store),
		CategoryUC:        usecase.NewCategoryUseCase(store),
		OrderUC:           usecase.NewOrderUseCase(store),
		CouponUC:          usecase.NewCouponUseCase(store),
		Guard:             auth.NewGuard(tokens),
		Pagination:        pagination.DefaultLimits(),
		LowStockThreshold: 10,
		RateLimiter:       limiter,
		LoginPolicy:       apphttp.NewRateLimitPolicy("login", time.Minute, 0, 2),
		Logger:            zerolog.Nop(),
	})

	f := &apiFixture{app: app, users: users}
	f.admin = f.createUser(t, "admin@suplegear.co", "admin", entity.RoleAdmin)
	f.vendor = f.createUser(t, "vendor@suplegear.co", "vendedor", entity.RoleVendor)
	return f
}

// createUser registra un usuario con el rol dado y devuelve su header Authorization.
func (f *apiFixture) createUser(t *testing.T, email, username, role string) string {
	t.Helper()
	_, err := f.users.Create(context.Background(), dto.CreateUserRequest{Email: email, Username: username, Password: testPassword}, role)
	require.NoError(t, err)
	return f.login(t, email)
}

func (f *apiFixture) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := call(t, f.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return "Bearer " + body["access_token"].(string)
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&body)
	}
	return resp, body
}

func TestUsers_RegistroLoginYPerfil(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/users", "", map[string]string{
		"email": "Cliente@Mail.com", "username": "cliente", "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "cliente@mail.com", body["email"])
	assert.Equal(t, "customer", body["role"])
	assert.NotContains(t, body, "password_hash")

	token := api.login(t, "cliente@mail.com")
	resp, body = call(t, api.app, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cliente", body["username"])
}

func TestUsers_RegistroDuplicadoYValidacion(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/users", "", map[string]string{
		"email": "admin@suplegear.co", "username": "otro", "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/users", "", map[string]string{
		"email": "no-es-email", "username": "ab", "password": "corta",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestAuth_CredencialesInvalidas(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@suplegear.co", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "nadie@suplegear.co", "password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_RefreshYLogout(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "vendor@suplegear.co", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refresh := body["refresh_token"].(string)
	access := body["access_token"].(string)

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, refresh, body["refresh_token"])

	// un access token no sirve como refresh
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/logout", "Bearer "+access, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_RateLimitPorEmail(t *testing.T) {
	api := newAPI(t, &fakeRateStore{counts: map[string]int64{}})

	// newAPI ya consumió un intento de admin@suplegear.co
	creds := map[string]string{"email": "admin@suplegear.co", "password": "incorrecta"}
	resp, _ := call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, body := call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", body["code"])

	// el contador es por email
	creds["email"] = "OTRO@Suplegear.co"
	for i := 0; i < 2; i++ {
		resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	creds["email"] = "otro@suplegear.co"
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "el email se normaliza antes de contar")
}

func TestUsers_AutorizacionPorRol(t *testing.T) {
	api := newAPI(t, nil)
	customer := api.createUser(t, "cliente@mail.com", "cliente", entity.RoleCustomer)

	resp, _ := call(t, api.app, http.MethodGet, "/api/v1/users/search/results?q=suplegear", customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, api.app, http.MethodGet, "/api/v1/users/search/results?q=suplegear", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 2, page["total"])

	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/users/search/results", api.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "q es obligatorio")

	// un customer no puede promoverse a admin
	resp, body = call(t, api.app, http.MethodGet, "/api/v1/users/me", customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := body["id"].(string)
	resp, _ = call(t, api.app, http.MethodPut, "/api/v1/users/"+id, customer, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = call(t, api.app, http.MethodPut, "/api/v1/users/"+id, customer, map[string]string{"first_name": "Ana"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ana", body["first_name"])

	resp, _ = call(t, api.app, http.MethodDelete, "/api/v1/users/"+id, customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, api.app, http.MethodDelete, "/api/v1/users/"+id, api.admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/users/"+id, api.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogo_FlujoCompleto(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/categories", api.vendor, map[string]string{"name": "Proteínas"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo admin crea categorías")

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/categories", api.admin, map[string]string{"name": "Proteínas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	categoryID := body["id"].(string)

	product := map[string]any{"name": "Whey Gold 5lb", "price": 249900, "stock": 3, "sku": "WG-5", "category_id": categoryID}
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/products", "", product)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	productID := body["id"].(string)
	price, err := decimal.NewFromString(body["price"].(string))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(249900).Equal(price))

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	product["sku"] = "X-1"
	product["category_id"] = "no-existe"
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/products/search/results?q=whey", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/products/"+productID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = call(t, api.app, http.MethodGet, "/api/v1/products/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, body = call(t, api.app, http.MethodPut, "/api/v1/products/"+productID, api.vendor, map[string]any{"stock": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 20, body["stock"])

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/products/low-stock?threshold=25", api.vendor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)
	resp, body = call(t, api.app, http.MethodGet, "/api/v1/products/low-stock", api.vendor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 0, "umbral por defecto 10")
	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/products/low-stock?threshold=abc", api.vendor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/categories/"+categoryID+"/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, _ = call(t, api.app, http.MethodDelete, "/api/v1/categories/"+categoryID, api.admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "la categoría tiene productos")
}

func TestCatalogo_IDsMalFormadosYCamposEnBlanco(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/categories", api.admin, map[string]string{"name": "Creatinas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	categoryID := body["id"].(string)

	product := map[string]any{"name": "Creatina 300g", "price": 59900, "stock": 5, "sku": "SKU1", "category_id": "5"}
	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	product["category_id"] = categoryID
	product["sku"] = "   "
	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	product["sku"] = "SKU1"
	product["price"] = 10000000000
	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	product["price"] = 59900
	resp, body = call(t, api.app, http.MethodPost, "/api/v1/products", api.vendor, product)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	productID := body["id"].(string)

	resp, body = call(t, api.app, http.MethodPut, "/api/v1/products/"+productID, api.vendor, map[string]any{"category_id": "5"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])

	for _, tc := range []struct {
		method, path, auth string
	}{
		{http.MethodGet, "/api/v1/products/abc", ""},
		{http.MethodGet, "/api/v1/categories/abc", ""},
		{http.MethodGet, "/api/v1/categories/abc/products", ""},
		{http.MethodDelete, "/api/v1/categories/abc", api.admin},
		{http.MethodGet, "/api/v1/users/abc", api.admin},
		{http.MethodGet, "/api/v1/orders/abc", api.admin},
	} {
		resp, body := call(t, api.app, tc.method, tc.path, tc.auth, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.path)
		assert.Equal(t, "NOT_FOUND", body["code"], tc.path)
	}
}

func TestCatalogo_PaginacionInvalida(t *testing.T) {
	api := newAPI(t, nil)

	resp, body := call(t, api.app, http.MethodGet, "/api/v1/categories?page=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/categories?page_size=500", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 100, page["page_size"], "page_size se recorta al máximo")
}

func TestOrdenes_Autorizacion(t *testing.T) {
	api := newAPI(t, nil)
	customer := api.createUser(t, "cliente@mail.com", "cliente", entity.RoleCustomer)

	resp, _ := call(t, api.app, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := call(t, api.app, http.MethodGet, "/api/v1/orders", customer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 0)

	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/orders/status/pending", customer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/orders/status/pending", api.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/orders/status/perdida", api.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, api.app, http.MethodGet, "/api/v1/orders/no-existe", customer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCupones_CrearYValidar(t *testing.T) {
	api := newAPI(t, nil)
	now := time.Now().UTC()
	coupon := map[string]any{
		"code":                "suple10",
		"discount_percentage": 10,
		"valid_from":          now.Add(-time.Hour),
		"valid_until":         now.Add(24 * time.Hour),
	}

	resp, _ := call(t, api.app, http.MethodPost, "/api/v1/coupons", api.vendor, coupon)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, api.app, http.MethodPost, "/api/v1/coupons", api.admin, coupon)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "SUPLE10", body["code"])

	resp, body = call(t, api.app, http.MethodGet, "/api/v1/coupons", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	validate := map[string]any{"code": "Suple10", "amount": 100000}
	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/coupons/validate", "", validate)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = call(t, api.app, http.MethodPost, "/api/v1/coupons/validate", api.vendor, validate)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, true, body["valid"])
	discount, err := decimal.NewFromString(body["discount"].(string))
	require.NoError(t, err)
	final, err := decimal.NewFromString(body["final_amount"].(string))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10000).Equal(discount))
	assert.True(t, decimal.NewFromInt(90000).Equal(final))

	resp, _ = call(t, api.app, http.MethodPost, "/api/v1/coupons/validate", api.vendor, map[string]any{"code": "NOEXISTE", "amount": 100})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
