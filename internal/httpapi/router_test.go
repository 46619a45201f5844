package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/welitoonl/tamagochi-pos/internal/auth"
	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/catalog"
	"github.com/welitoonl/tamagochi-pos/internal/checkout"
	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zap.NewNop()

	users := auth.NewUserStore()
	require.NoError(t, auth.SeedUsers(users, "123456"))

	deps := Deps{
		Authenticator:  auth.NewAuthenticator(users, log),
		Sessions:       auth.NewSessionStore(time.Hour),
		Lookup:         catalog.NewLookup(catalog.NewMemorySource(catalog.SeedProducts()...), nil, log),
		Carts:          cart.NewManager(),
		Checkout:       checkout.NewService(checkout.NewMemoryStore(), log),
		RequestTimeout: 5 * time.Second,
	}

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "maria@tamagochii.com",
		"password": "123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out LoginResponseDTO
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    "maria@tamagochii.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "invalid_credentials", body.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalog_SearchAndFindByCode(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/?q=coca", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Coca-Cola 2L", products[0].Name)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/code/7891150047310", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var product domain.Product
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.Equal(t, "Sabonete Dove", product.Name)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products/code/0000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "not_found", body.Code)
}

func TestCart_FullFlow(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Empty cart to start.
	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot domain.Cart
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Empty(t, snapshot.Items)
	assert.True(t, snapshot.Total.IsZero())

	// Scan the same code twice, then a second product.
	for i := 0; i < 2; i++ {
		resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", token, AddItemRequestDTO{Code: "7894900011012"})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}
	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", token, AddItemRequestDTO{Code: "7891150047310"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, 2, snapshot.Items[0].Quantity)
	assert.Equal(t, "21.50", snapshot.Total.StringFixed(2))

	// Unknown code does not touch the cart.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", token, AddItemRequestDTO{Code: "no-such-code"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Quantity down to 1, then remove the second line.
	resp, raw = doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/1", token, UpdateQuantityRequestDTO{Quantity: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, "13.00", snapshot.Total.StringFixed(2))

	resp, raw = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart/items/3", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "8.50", snapshot.Total.StringFixed(2))

	// Zero quantity removes the last line.
	resp, raw = doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/1", token, UpdateQuantityRequestDTO{Quantity: 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Empty(t, snapshot.Items)
	assert.True(t, snapshot.Total.IsZero())
}

func TestCart_PaymentMethod(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, raw := doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/payment-method", token,
		SetPaymentMethodRequestDTO{PaymentMethod: domain.PaymentCard})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot domain.Cart
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Equal(t, domain.PaymentCard, snapshot.PaymentMethod)

	resp, raw = doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/payment-method", token,
		SetPaymentMethodRequestDTO{PaymentMethod: "PIX"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "invalid_payment_method", body.Code)
}

func TestCheckout_FinalizeAndList(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	// Finalizing an empty cart is refused.
	resp, raw := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "empty_cart", body.Code)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", token, AddItemRequestDTO{Code: "7894900011012"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var sale domain.Sale
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.NotEmpty(t, sale.ID)
	assert.Equal(t, domain.SaleClosed, sale.Status)
	assert.Equal(t, "Maria Operadora", sale.OperatorName)
	assert.Equal(t, "8.50", sale.Total.StringFixed(2))
	require.Len(t, sale.Items, 1)

	// Cart is empty again; a second finalize conflicts.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/api/v1/sales?limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sales []domain.Sale
	require.NoError(t, json.Unmarshal(raw, &sales))
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
}

func TestListSales_InvalidLimit(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, raw := doJSON(t, http.MethodGet, srv.URL+"/api/v1/sales?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "invalid_limit", body.Code)
}

func TestTerminalHeader_IsolatesCarts(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	add := func(terminal string) domain.Cart {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/cart/items",
			bytes.NewReader([]byte(`{"code":"7894900011012"}`)))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Terminal-ID", terminal)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var snapshot domain.Cart
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
		return snapshot
	}

	first := add("caixa-1")
	second := add("caixa-2")

	// Each terminal carries its own single-line cart.
	require.Len(t, first.Items, 1)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 1, second.Items[0].Quantity)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddItem_BadBodies(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/cart/items",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2, raw := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", token, AddItemRequestDTO{Code: ""})
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "invalid_code", body.Code)
}

func TestCart_OnlineAndSync(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp, raw := doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/online", token, SetOnlineRequestDTO{Online: false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot domain.Cart
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.False(t, snapshot.Online)

	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/sync", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.False(t, snapshot.LastSync.IsZero())
}
