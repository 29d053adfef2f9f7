package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus is the stock-derived availability of a product.
type ProductStatus string

const (
	StatusInStock    ProductStatus = "in_stock"
	StatusLowStock   ProductStatus = "low_stock"
	StatusOutOfStock ProductStatus = "out_of_stock"
)

// lowStockThreshold is the stock level at or below which a product is
// reported as low_stock.
const lowStockThreshold = 5

// StatusForStock derives the availability status from a stock count.
func StatusForStock(stock int) ProductStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Product represents a catalogue item.
type Product struct {
	ID            uuid.UUID     `json:"id"`
	SKU           string        `json:"sku"`
	Name          string        `json:"name"`
	Brand         string        `json:"brand"`
	CategoryID    uuid.UUID     `json:"categoryId"`
	Price         float64       `json:"price"`
	DiscountPrice *float64      `json:"discountPrice,omitempty"`
	Description   string        `json:"description,omitempty"`
	Material      string        `json:"material,omitempty"`
	Color         string        `json:"color,omitempty"`
	Stock         int           `json:"stock"`
	Status        ProductStatus `json:"status"`
	AverageRating float64       `json:"averageRating"`
	IsFeatured    bool          `json:"isFeatured"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// EffectivePrice returns the discount price when one is set and lower than
// the list price, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// Rating is one user's rating/review of a product.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AverageRating computes the mean rating, 0 when there are none.
func AverageRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(ratings))
}

// Category groups products.
type Category struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Status     ProductStatus
	Featured   bool
	Limit      int
	Offset     int
}
