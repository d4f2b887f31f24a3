package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/loja-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (models.Product, error)
	// Save inserts the product when ID is zero and overwrites the stored row otherwise.
	Save(ctx context.Context, product models.Product) (models.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
