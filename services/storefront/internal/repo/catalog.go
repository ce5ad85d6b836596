package repo

import (
	"context"
	"errors"

	"storefront-order-system/shared/pkg/models"
)

var ErrProductNotFound = errors.New("product not found")

type Catalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
}
