package seed

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.jsonl.gz")

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}

	return path
}

func TestFileLoader_Load(t *testing.T) {
	path := writeSeedFile(t, []string{
		`{"kind": "category", "category": {"name": "Sofas", "description": "All sofas"}}`,
		``,
		`{"kind": "product", "product": {"sku": "SOF-001", "name": "Sofa", "category": "Sofas", "price": 899, "stock": 3}}`,
	})

	loader := NewFileLoader(zerolog.Nop())

	records, err := loader.Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "category", records[0].Kind)
	assert.Equal(t, "Sofas", records[0].Category.Name)

	assert.Equal(t, "product", records[1].Kind)
	assert.Equal(t, "SOF-001", records[1].Product.SKU)
	assert.Equal(t, 899.0, records[1].Product.Price)
	assert.Equal(t, 3, records[1].Product.Stock)
}

func TestFileLoader_Load_MalformedLine(t *testing.T) {
	path := writeSeedFile(t, []string{
		`{"kind": "category", "category": {"name": "Sofas"}}`,
		`{not valid json`,
	})

	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFileLoader_Load_UnknownKind(t *testing.T) {
	path := writeSeedFile(t, []string{
		`{"kind": "promotion"}`,
	})

	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record kind")
}

func TestFileLoader_Load_MissingPayload(t *testing.T) {
	path := writeSeedFile(t, []string{
		`{"kind": "product"}`,
	})

	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing product payload")
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), "/nonexistent/seed.jsonl.gz")
	assert.Error(t, err)
}

func TestFallbackLoader_UsesFileWhenS3Disabled(t *testing.T) {
	path := writeSeedFile(t, []string{
		`{"kind": "category", "category": {"name": "Tables"}}`,
	})

	fileLoader := NewFileLoader(zerolog.Nop())
	loader := NewFallbackLoader(nil, fileLoader, "seed/", false, zerolog.Nop())

	records, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
