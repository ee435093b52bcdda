package models

import (
	"context"

	"gorm.io/gorm"
)

// Catalog groups the reference data lookups used by forms and generators.
type Catalog struct {
	Products *ProductsRepository
	Reasons  *ReasonsRepository
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{
		Products: NewProductsRepository(db),
		Reasons:  NewReasonsRepository(db),
	}
}

func (c *Catalog) GetAllProducts(ctx context.Context) ([]Product, error) {
	return c.Products.GetAllProducts(ctx)
}

func (c *Catalog) GetAllReasons(ctx context.Context) ([]ReturnReason, error) {
	return c.Reasons.GetAllReasons(ctx)
}
