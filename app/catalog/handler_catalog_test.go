package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/retailops/returns-complaints/models"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.ProductFilters
	lastCalledSKU     string
}

func (m *MockProductRepo) GetFilteredProducts(_ context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, 0, m.Err
	}

	// Simulate filtering
	var filteredProducts []models.Product
	for _, p := range m.SourceProducts {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.PriceLessThan != nil && p.Price.InexactFloat64() >= *filters.PriceLessThan {
			continue
		}
		filteredProducts = append(filteredProducts, p)
	}

	total := int64(len(filteredProducts))

	// Simulate pagination
	start := min(offset, len(filteredProducts))
	end := min(offset+limit, len(filteredProducts))

	return filteredProducts[start:end], total, nil
}

func (m *MockProductRepo) GetBySKU(_ context.Context, sku string) (*models.Product, error) {
	m.lastCalledSKU = sku

	if m.Err != nil {
		return nil, m.Err
	}

	for _, p := range m.SourceProducts {
		if p.SKU == sku {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

// --- Helpers ---

func newTestProduct(id uint, sku, name, category string, price float64) models.Product {
	return models.Product{
		ID:       id,
		SKU:      sku,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromFloat(price),
	}
}

var allMockProducts = []models.Product{
	newTestProduct(1, "SKU-1001", "Smartphone X", "Electronics", 29999),
	newTestProduct(2, "SKU-1002", "Laptop Pro", "Electronics", 89999),
	newTestProduct(3, "SKU-1003", "Air Headphones", "Accessories", 7999),
	newTestProduct(4, "SKU-1004", "Phone Case", "Accessories", 1499),
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Success with default pagination",
			url:  "/api/products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{
					SourceProducts: allMockProducts,
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 4)
				assert.Equal(t, Product{ID: 1, SKU: "SKU-1001", Name: "Smartphone X", Category: "Electronics", Price: 29999}, resp.Products[0])
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset 0")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit 10")
				assert.Empty(t, repo.lastCalledFilters.Category)
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Success with custom pagination",
			url:  "/api/products?offset=1&limit=2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, "SKU-1002", resp.Products[0].SKU)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledOffset)
				assert.Equal(t, 2, repo.lastCalledLimit)
			},
		},
		{
			name: "Pagination with out-of-bounds values",
			url:  "/api/products?offset=-10&limit=200",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Offset should be clamped to 0")
				assert.Equal(t, 100, repo.lastCalledLimit, "Limit should be clamped to 100")
			},
		},
		{
			name: "Pagination with lower bound limit",
			url:  "/api/products?limit=0",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledLimit, "Limit should be clamped to 1")
			},
		},
		{
			name: "Filter by category",
			url:  "/api/products?category=Accessories",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2, resp.Total)
				assert.Equal(t, "SKU-1003", resp.Products[0].SKU)
				assert.Equal(t, "SKU-1004", resp.Products[1].SKU)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Accessories", repo.lastCalledFilters.Category)
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Combined filters",
			url:  "/api/products?category=Electronics&price_lt=50000",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.Total)
				assert.Equal(t, "SKU-1001", resp.Products[0].SKU)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Electronics", repo.lastCalledFilters.Category)
				assert.NotNil(t, repo.lastCalledFilters.PriceLessThan)
				assert.Equal(t, 50000.0, *repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Empty result from repo",
			url:  "/api/products?category=Garden",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"total":0,"products":[]}`, rec.Body.String())
			},
		},
		{
			name: "Repository error",
			url:  "/api/products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to get products", errResp["error"])
			},
		},
		{
			name: "Invalid query param values are ignored",
			url:  "/api/products?offset=abc&limit=xyz&price_lt=def",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset for invalid value")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit for invalid value")
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan, "Expected nil price filter for invalid value")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo)
			req := httptest.NewRequest("GET", tc.url, nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}
