package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedProducts returns the reference product list written by ResetSchema.
func SeedProducts() []Product {
	return []Product{
		{SKU: "SKU-1001", Name: "Smartphone X", Category: "Electronics", Price: decimal.NewFromInt(29999)},
		{SKU: "SKU-1002", Name: "Laptop Pro", Category: "Electronics", Price: decimal.NewFromInt(89999)},
		{SKU: "SKU-1003", Name: "Air Headphones", Category: "Accessories", Price: decimal.NewFromInt(7999)},
		{SKU: "SKU-1004", Name: "Phone Case", Category: "Accessories", Price: decimal.NewFromInt(1499)},
		{SKU: "SKU-1005", Name: `Monitor 27"`, Category: "Electronics", Price: decimal.NewFromInt(24999)},
	}
}

// SeedReasons returns the reference return reasons written by ResetSchema.
func SeedReasons() []ReturnReason {
	return []ReturnReason{
		{Code: "DAMAGED", Name: "Damaged in delivery", Severity: 3, Category: "Delivery"},
		{Code: "DEFECTIVE", Name: "Defective item", Severity: 4, Category: "Manufacturing"},
		{Code: "WRONG_ITEM", Name: "Wrong item", Severity: 2, Category: "Warehouse"},
		{Code: "LATE_DELIVERY", Name: "Late delivery", Severity: 1, Category: "Delivery"},
		{Code: "CHANGED_MIND", Name: "Changed mind", Severity: 1, Category: "Customer"},
		{Code: "MISMATCH", Name: "Does not match description", Severity: 2, Category: "Marketing"},
	}
}

// Seed inserts the reference products and reasons in one transaction.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := SeedProducts()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", classify(err))
		}
		reasons := SeedReasons()
		if err := tx.Create(&reasons).Error; err != nil {
			return fmt.Errorf("seed reasons: %w", classify(err))
		}
		return nil
	})
}

// ResetSchema drops every table, recreates the schema and reseeds the
// reference data. All complaints are lost.
func ResetSchema(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	if err := m.DropTable(&Complaint{}, &ReturnReason{}, &Product{}); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	return Seed(ctx, db)
}

// EnsureSeeded seeds the reference data when the products table is empty and
// reports whether it did.
func EnsureSeeded(ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&Product{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	return true, Seed(ctx, db)
}
