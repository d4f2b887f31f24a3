package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	api "github.com/rogerio-castellano/loja-api/internal/http"
	"github.com/rogerio-castellano/loja-api/internal/http/handlers"
	"github.com/rogerio-castellano/loja-api/internal/models"
	"github.com/rogerio-castellano/loja-api/internal/repo"
	"github.com/rogerio-castellano/loja-api/internal/service"
)

const basePath = "/api/produtos"

// newTestRouter wires an in-memory repository behind the handlers and returns a router
// without auth or rate limiting.
func newTestRouter(t *testing.T) (http.Handler, *repo.InMemoryProductRepository) {
	t.Helper()
	productRepo := repo.NewInMemoryProductRepository()
	return newRouterWith(t, productRepo, api.RouterConfig{}), productRepo
}

func newRouterWith(t *testing.T, r repo.ProductRepository, cfg api.RouterConfig) http.Handler {
	t.Helper()
	handlers.SetProductService(service.NewProductService(r))
	handlers.SetPinger(nil)
	t.Cleanup(func() {
		handlers.SetProductService(nil)
		handlers.SetPinger(nil)
	})

	cfg.Logger = zerolog.Nop()
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}
	return api.NewRouter(cfg)
}

func do(r http.Handler, method, target string, body any, headers ...http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if len(headers) > 0 {
		for k, v := range headers[0] {
			req.Header[k] = v
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func productPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&p), "body: %s", w.Body.String())
	return p
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []models.Product {
	t.Helper()
	var ps []models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ps), "body: %s", w.Body.String())
	return ps
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body), "body: %s", w.Body.String())
	return body.Error
}

func createProduct(t *testing.T, r http.Handler, body any) models.Product {
	t.Helper()
	w := do(r, http.MethodPost, basePath, body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decodeProduct(t, w)
}

type failingRepo struct {
	err error
}

func (f failingRepo) FindAll(context.Context) ([]models.Product, error) {
	return nil, f.err
}

func (f failingRepo) FindByID(context.Context, int64) (models.Product, error) {
	return models.Product{}, f.err
}

func (f failingRepo) Save(context.Context, models.Product) (models.Product, error) {
	return models.Product{}, f.err
}

func (f failingRepo) DeleteByID(context.Context, int64) error {
	return f.err
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }
