// Package catalog builds the storefront's product list from fixed lookup tables.
package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"storefront/internal/models"
)

// DefaultPerCategory is the number of products generated for every category.
const DefaultPerCategory = 31

const reviewComment = "Absolutely stunning quality. Worth every Taka."
const reviewDate = "2025-02-01"

// Generator derives products by crossing categories with brand, style,
// material and image tables. Price, rating and stock come from Rand.
type Generator struct {
	PerCategory int
	Rand        *rand.Rand
}

// NewGenerator returns a Generator seeded with seed. A zero seed picks a
// random one, so prices and stock differ between runs.
func NewGenerator(seed int64, perCategory int) *Generator {
	if seed == 0 {
		seed = rand.Int63()
	}
	if perCategory <= 0 {
		perCategory = DefaultPerCategory
	}
	return &Generator{
		PerCategory: perCategory,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// Generate returns the full product list, category by category.
func (g *Generator) Generate() []models.Product {
	products := make([]models.Product, 0, len(Categories)*g.PerCategory)
	for _, cat := range Categories {
		for i := 0; i < g.PerCategory; i++ {
			products = append(products, g.product(cat, i))
		}
	}
	return products
}

func (g *Generator) product(cat models.Category, i int) models.Product {
	brands, ok := categoryBrands[cat]
	if !ok {
		brands = []string{defaultBrand}
	}
	pool, ok := imagePools[cat]
	if !ok {
		pool = imagePools[fallbackImageKey]
	}
	pr, ok := priceRanges[cat]
	if !ok {
		pr = defaultPriceRange
	}

	material := materials[i%len(materials)]
	style := styles[i%len(styles)]
	brand := brands[i%len(brands)]

	return models.Product{
		ID:       ProductID(cat, i),
		Name:     fmt.Sprintf("%s %s %s %s", brand, style, material, nameSuffix(cat)),
		Brand:    brand,
		Category: cat,
		Price:    math.Floor((g.Rand.Float64()*(pr.max-pr.min)+pr.min)/100) * 100,
		Description: fmt.Sprintf(
			"Experience the extraordinary with the %s %s. Crafted with meticulous attention to detail using %s, "+
				"this piece from our %s collection offers unparalleled sophistication for the discerning gentleman.",
			brand, cat, strings.ToLower(material), style),
		Images: []string{pool[i%len(pool)], pool[(i+1)%len(pool)], pool[(i+2)%len(pool)]},
		Sizes:  sizesFor(cat),
		Colors: append([]string(nil), colors...),
		Rating: 4.5 + g.Rand.Float64()*0.5,
		Stock:  g.Rand.Intn(30) + 5,
		Reviews: []models.Review{{
			ID:       fmt.Sprintf("r-%s-%d", cat, i),
			UserName: reviewers[i%len(reviewers)],
			Rating:   5,
			Comment:  reviewComment,
			Date:     reviewDate,
		}},
		IsNew:      i < 3,
		IsFeatured: i == 0,
	}
}

// ProductID returns the identifier of the i-th product of a category: the
// category's lowercase letters, a dash and the index.
func ProductID(cat models.Category, i int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(string(cat)) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s-%d", b.String(), i)
}

// nameSuffix drops one trailing "s" and every "&" from the category name.
func nameSuffix(cat models.Category) string {
	s := string(cat)
	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "S") {
		s = s[:len(s)-1]
	}
	return strings.ReplaceAll(s, "&", "")
}

func sizesFor(cat models.Category) []string {
	lower := strings.ToLower(string(cat))
	if strings.Contains(lower, "shoe") || strings.Contains(lower, "boot") || strings.Contains(lower, "watch") {
		return append([]string(nil), accessorySizes...)
	}
	return append([]string(nil), apparelSizes...)
}
