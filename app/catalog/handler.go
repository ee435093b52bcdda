package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/retailops/returns-complaints/app/httpjson"
	"github.com/retailops/returns-complaints/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID       uint    `json:"id"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func toProduct(p models.Product) Product {
	return Product{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.InexactFloat64(),
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			limit = min(max(l, 1), 100)
		}
	}

	// Parse filters
	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		Category:      r.URL.Query().Get("category"),
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	httpjson.Write(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	product, err := h.repo.GetBySKU(r.Context(), sku)
	if errors.Is(err, models.ErrProductNotFound) {
		httpjson.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	httpjson.Write(w, http.StatusOK, toProduct(*product))
}
