package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item that customers can return.
// The SKU is the natural key used by bulk imports.
type Product struct {
	ID        uint            `gorm:"primaryKey"`
	SKU       string          `gorm:"size:50;uniqueIndex;not null"`
	Name      string          `gorm:"size:100;not null"`
	Category  string          `gorm:"size:50"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

func (p *Product) TableName() string {
	return "products"
}
