package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleSeed creates a sample catalogue seed file for local
// development. The file is gzipped JSON lines: category records first, then
// product records referencing those categories by name.
func main() {
	dataDir := "data/seed"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	filePath := filepath.Join(dataDir, "products.jsonl.gz")

	records := []map[string]interface{}{
		{"kind": "category", "category": map[string]string{
			"name": "Sofas", "description": "Two and three seater sofas",
		}},
		{"kind": "category", "category": map[string]string{
			"name": "Tables", "description": "Dining and coffee tables",
		}},
		{"kind": "category", "category": map[string]string{
			"name": "Chairs", "description": "Dining, office and lounge chairs",
		}},
		{"kind": "product", "product": map[string]interface{}{
			"sku": "SOF-OAK-3S", "name": "Oakland 3-Seater Sofa", "brand": "Nordica",
			"category": "Sofas", "price": 899.0, "discountPrice": 749.0,
			"material": "Fabric", "color": "Grey", "stock": 12, "isFeatured": true,
		}},
		{"kind": "product", "product": map[string]interface{}{
			"sku": "TAB-WAL-DIN", "name": "Walnut Dining Table", "brand": "Nordica",
			"category": "Tables", "price": 549.0,
			"material": "Walnut", "color": "Brown", "stock": 8,
		}},
		{"kind": "product", "product": map[string]interface{}{
			"sku": "CHA-ERG-OFF", "name": "Ergonomic Office Chair", "brand": "SitWell",
			"category": "Chairs", "price": 299.0, "discountPrice": 249.0,
			"material": "Mesh", "color": "Black", "stock": 4,
		}},
		{"kind": "product", "product": map[string]interface{}{
			"sku": "CHA-LNG-VEL", "name": "Velvet Lounge Chair", "brand": "Maison",
			"category": "Chairs", "price": 429.0,
			"material": "Velvet", "color": "Green", "stock": 0,
		}},
	}

	if err := createSeedFile(filePath, records); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d records\n", filePath, len(records))
}

func createSeedFile(filePath string, records []map[string]interface{}) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}
