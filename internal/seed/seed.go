// Package seed loads catalogue seed files and imports them into the
// database. Files are gzipped JSON lines, one record per line, and can be
// read from the local file system or S3.
package seed

import (
	"context"
)

// Record is one line of a seed file. Kind selects which payload is set.
type Record struct {
	Kind     string          `json:"kind"`
	Category *CategoryRecord `json:"category,omitempty"`
	Product  *ProductRecord  `json:"product,omitempty"`
}

// CategoryRecord describes a category to import.
type CategoryRecord struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductRecord describes a product to import. Category is referenced by
// name and must appear earlier in the file or already exist.
type ProductRecord struct {
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Description   string   `json:"description,omitempty"`
	Material      string   `json:"material,omitempty"`
	Color         string   `json:"color,omitempty"`
	Stock         int      `json:"stock"`
	IsFeatured    bool     `json:"isFeatured,omitempty"`
}

// Loader reads seed records from a source.
type Loader interface {
	// Load reads all records from the named file.
	Load(ctx context.Context, filePath string) ([]Record, error)
}
