// Package service holds the product business logic between the HTTP layer and the repository.
package service

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/loja-api/internal/models"
	"github.com/rogerio-castellano/loja-api/internal/repo"
)

// ErrNotFound is returned when an operation targets a product id that does not exist.
var ErrNotFound = repo.ErrProductNotFound

type ProductService struct {
	repo repo.ProductRepository
}

func NewProductService(r repo.ProductRepository) *ProductService {
	return &ProductService{repo: r}
}

// ListAll returns every stored product in repository order.
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Save inserts the product when it has no id and overwrites the stored row otherwise.
// A field outside its column's range is rejected with a *FieldError.
func (s *ProductService) Save(ctx context.Context, p models.Product) (models.Product, error) {
	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	return s.repo.Save(ctx, p)
}

func (s *ProductService) DeleteByID(ctx context.Context, id int64) error {
	return s.repo.DeleteByID(ctx, id)
}

// Update replaces name, price and quantity of product id with the values in updated.
// updated.ID is ignored.
func (s *ProductService) Update(ctx context.Context, id int64, updated models.Product) (models.Product, error) {
	if err := validateProduct(updated); err != nil {
		return models.Product{}, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	existing.Name = updated.Name
	existing.Price = updated.Price
	existing.Quantity = updated.Quantity

	return s.repo.Save(ctx, existing)
}

// UpdatePartial applies the recognised entries of fields to product id. Unknown keys,
// including "id", are ignored. A value of the wrong type aborts the update with a
// *FieldError and nothing is persisted.
func (s *ProductService) UpdatePartial(ctx context.Context, id int64, fields map[string]any) (models.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	if err := applyFields(&existing, fields); err != nil {
		return models.Product{}, fmt.Errorf("partial update of product %d: %w", id, err)
	}

	return s.repo.Save(ctx, existing)
}
