package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-order-system/shared/pkg/models"
)

// StaticCatalog serves the built-in product list when no database is configured.
type StaticCatalog struct {
	products []models.Product
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{products: SeedProducts()}
}

func SeedProducts() []models.Product {
	p := func(id int64, title, category, unit, image, price string) models.Product {
		return models.Product{
			ID:       id,
			Title:    title,
			Category: category,
			Unit:     unit,
			Image:    image,
			Price:    decimal.RequireFromString(price),
			InStock:  true,
		}
	}
	return []models.Product{
		p(1, "Fresh Button Mushrooms", "fresh", "200 g", "/images/button.jpg", "60"),
		p(2, "Fresh Oyster Mushrooms", "fresh", "200 g", "/images/oyster.jpg", "90"),
		p(3, "Fresh Mushrooms", "fresh", "500 g", "/images/fresh.jpg", "150"),
		p(4, "Dried Shiitake", "dried", "100 g", "/images/shiitake.jpg", "240"),
		p(5, "Mushroom Pickle", "preserves", "250 g jar", "/images/pickle.jpg", "220.50"),
		p(6, "Mushroom Powder", "dried", "100 g", "/images/powder.jpg", "180"),
	}
}

func (c *StaticCatalog) List(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *StaticCatalog) Get(_ context.Context, id int64) (models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
