package sim

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productNameRe = regexp.MustCompile(`^[A-Za-z]+ [A-Z]{2}-[0-9]{3}$`)

func TestGenerateCatalog(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	catalog := GenerateCatalog(cfg, NewRand(22))

	require.Len(t, catalog.Products, len(cfg.Categories)*cfg.ProductsPerCategory)

	priceRanges := make(map[string]CategoryParams, len(cfg.Categories))
	for _, c := range cfg.Categories {
		priceRanges[c.Name] = c
	}

	for i, p := range catalog.Products {
		assert.Equal(t, cfg.ProductIDBase+i, p.ID, "IDs must be sequential from the base")
		assert.Regexp(t, productNameRe, p.Name)
		assert.Less(t, p.CostPrice, p.CurrentPrice, "cost basis must stay below sale price")
		assert.Greater(t, p.CostPrice, 0.0)

		params, ok := priceRanges[p.Category]
		require.True(t, ok, "unknown category %q", p.Category)
		assert.GreaterOrEqual(t, p.CurrentPrice, params.PriceMin*priceJitterMin)
		assert.LessOrEqual(t, p.CurrentPrice, params.PriceMax*priceJitterMax)

		// Cost must come from the category's margin range.
		margin := 1 - p.CostPrice/p.CurrentPrice
		assert.InDelta(t, margin, (params.MarginMin+params.MarginMax)/2, (params.MarginMax-params.MarginMin)/2+0.01)
	}
}

func TestGenerateCatalogGroupsByCategory(t *testing.T) {
	cfg := DefaultConfig()
	catalog := GenerateCatalog(cfg, NewRand(7))

	for _, c := range cfg.Categories {
		products := catalog.InCategory(c.Name)
		require.Len(t, products, cfg.ProductsPerCategory)
		for _, p := range products {
			assert.Equal(t, c.Name, p.Category)
		}
	}
}

func TestGenerateCatalogDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	first := GenerateCatalog(cfg, NewRand(22))
	second := GenerateCatalog(cfg, NewRand(22))
	assert.Equal(t, first.Products, second.Products)
}
