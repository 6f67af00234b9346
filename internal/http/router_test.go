package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	return NewRouter(RouterDeps{
		Catalog:        newTestCatalog(t),
		Visitors:       newTestVisitors(t),
		Sessions:       NewCookieStore("test-secret-key-0123456789abcdef"),
		RequestTimeout: 5 * time.Second,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	}
	for _, c := range cookies {
		request.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, request)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range recorder.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", SessionCookieName)
	return nil
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := newTestRouter(t)

	request := httptest.NewRequest("GET", "/health", nil)
	request.Header.Set("X-Request-ID", "req-42")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, "req-42", recorder.Header().Get("X-Request-ID"))
}

func TestRouter_CatalogNeedsNoSession(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, "GET", "/api/v1/products/reality-check-tee", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
}

func TestRouter_CartFollowsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, "POST", "/api/v1/cart/items",
		`{"product_slug":"kolor-tracksuit","size":"M","color":"BURGUNDY","quantity":2}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	cookie := sessionCookie(t, recorder)

	recorder = do(t, router, "GET", "/api/v1/cart", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	var state cart.State
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&state))
	assert.Equal(t, 2, state.Summary.ItemCount)
	assert.Equal(t, 560.0, state.Summary.Subtotal)
	assert.Zero(t, state.Summary.Shipping)
	assert.True(t, state.IsOpen)

	// a different browser gets its own empty cart
	recorder = do(t, router, "GET", "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var other cart.State
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&other))
	assert.Empty(t, other.Items)
}

func TestRouter_TamperedCookieStartsFresh(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, "GET", "/api/v1/session", "",
		&http.Cookie{Name: SessionCookieName, Value: "forged"})

	require.Equal(t, http.StatusOK, recorder.Code)
	cookie := sessionCookie(t, recorder)
	assert.NotEqual(t, "forged", cookie.Value)
}

func TestRouter_SessionFlow(t *testing.T) {
	router := newTestRouter(t)

	recorder := do(t, router, "GET", "/api/v1/session", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	cookie := sessionCookie(t, recorder)

	recorder = do(t, router, "POST", "/api/v1/session/menu/open", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(t, router, "GET", "/api/v1/session?route=/shop", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	var response SessionResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.MenuOpen)
	assert.True(t, response.ShowChrome)
	assert.False(t, response.HasEntered)
}
