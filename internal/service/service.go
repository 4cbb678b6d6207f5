package service

import (
	"context"

	"cantina-api/internal/model"

	"github.com/shopspring/decimal"
)

// ProductService defines the business operations over the product
// catalogue. Missing rows surface as model.ErrNoResult; callers map that
// to their own not-found representation.
type ProductService interface {
	// List retrieves every product. An empty table yields model.ErrNoResult.
	List(ctx context.Context) ([]model.Row, error)

	// Get retrieves a single product by id.
	Get(ctx context.Context, id int64) (model.Row, error)

	// Create inserts a product and returns the freshly stored row,
	// including the database-assigned id and timestamp.
	Create(ctx context.Context, name string, category model.Category, price decimal.Decimal) (model.Row, error)

	// Update assigns the given fields to the product with the given id.
	Update(ctx context.Context, id int64, fields model.Fields) error

	// Delete removes the product with the given id.
	Delete(ctx context.Context, id int64) error
}
