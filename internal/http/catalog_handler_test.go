package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	handler := NewCatalogHandler(newTestCatalog(t), 5*time.Second)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", nil},
		{"category", "?category=pants", []string{"kolor-cargo-pants", "essentials-joggers"}},
		{"size", "?size=XS&size=ONE%20SIZE", []string{"reality-check-tee", "klr-logo-cap"}},
		{"price sorted", "?category=t-shirts&sort=price-high", []string{"philosophy-long-sleeve", "reality-check-tee"}},
		{"new", "?filter=new&max_price=130", []string{"kolor-essential-hoodie", "vine-monogram-crewneck"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ListProducts(recorder, httptest.NewRequest("GET", "/products"+tt.query, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			var response productListResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
			assert.Equal(t, len(response.Products), response.Count)

			if tt.want == nil {
				assert.Equal(t, 9, response.Count)
				return
			}
			got := make([]string, len(response.Products))
			for i, p := range response.Products {
				got[i] = p.Slug
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListProducts_BadQuery(t *testing.T) {
	handler := NewCatalogHandler(newTestCatalog(t), 5*time.Second)

	tests := []struct {
		query string
		code  string
	}{
		{"?sort=popular", "invalid_sort"},
		{"?filter=sale", "invalid_filter"},
		{"?in_stock=maybe", "invalid_in_stock"},
		{"?min_price=-5", "invalid_price"},
		{"?max_price=abc", "invalid_price"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ListProducts(recorder, httptest.NewRequest("GET", "/products"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			var response ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
			assert.Equal(t, tt.code, response.Code)
		})
	}
}

func TestGetProduct(t *testing.T) {
	handler := NewCatalogHandler(newTestCatalog(t), 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetProduct(recorder, withURLParam(httptest.NewRequest("GET", "/products/kolor-tracksuit", nil), "slug", "kolor-tracksuit"))

	require.Equal(t, http.StatusOK, recorder.Code)
	var product domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&product))
	assert.Equal(t, "KOLOR TRACKSUIT", product.Name)
	assert.Len(t, product.Colors, 2)

	recorder = httptest.NewRecorder()
	handler.GetProduct(recorder, withURLParam(httptest.NewRequest("GET", "/products/ghost", nil), "slug", "ghost"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
