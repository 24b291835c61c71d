package sim

import (
	"fmt"
	"strings"

	"github.com/jogardn/shopsim/pkg/models"
)

const (
	priceJitterMin = 0.95
	priceJitterMax = 1.15

	modelCodeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	modelCodeDigits  = "0123456789"
)

// Catalog is the generated product set, indexed by category for basket
// sampling. Built once per run and read-only afterwards.
type Catalog struct {
	Products   []models.Product
	byCategory map[string][]models.Product
}

// InCategory returns the products of one category in generation order.
func (c *Catalog) InCategory(category string) []models.Product {
	return c.byCategory[category]
}

// GenerateCatalog produces the fixed product set: for each category, a run
// of sequentially numbered products with jittered prices and a cost basis
// drawn from the category's margin range. Iterates categories in config
// order so the random stream position is reproducible.
func GenerateCatalog(cfg *Config, rng *Rand) *Catalog {
	cat := &Catalog{
		Products:   make([]models.Product, 0, len(cfg.Categories)*cfg.ProductsPerCategory),
		byCategory: make(map[string][]models.Product, len(cfg.Categories)),
	}

	id := cfg.ProductIDBase
	for _, params := range cfg.Categories {
		for i := 0; i < cfg.ProductsPerCategory; i++ {
			code := modelCode(rng)
			name := fmt.Sprintf("%s %s", singular(params.Name), code)

			base := rng.Uniform(params.PriceMin, params.PriceMax)
			current := round2(base * rng.Uniform(priceJitterMin, priceJitterMax))
			margin := rng.Uniform(params.MarginMin, params.MarginMax)
			cost := round2(current * (1 - margin))

			p := models.Product{
				ID:           id,
				Name:         name,
				Category:     params.Name,
				CurrentPrice: current,
				CostPrice:    cost,
			}
			cat.Products = append(cat.Products, p)
			cat.byCategory[params.Name] = append(cat.byCategory[params.Name], p)
			id++
		}
	}
	return cat
}

// modelCode builds a two-letter/three-digit code like "KT-482".
func modelCode(rng *Rand) string {
	var b strings.Builder
	for i := 0; i < 2; i++ {
		b.WriteByte(modelCodeLetters[rng.Intn(len(modelCodeLetters))])
	}
	b.WriteByte('-')
	for i := 0; i < 3; i++ {
		b.WriteByte(modelCodeDigits[rng.Intn(len(modelCodeDigits))])
	}
	return b.String()
}

// singular strips the plural 's' from a category name for product naming.
func singular(category string) string {
	return strings.TrimSuffix(category, "s")
}
