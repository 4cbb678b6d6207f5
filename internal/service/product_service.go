package service

import (
	"context"
	"errors"
	"fmt"

	"cantina-api/internal/model"
	"cantina-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product in natural column order.
func (s *productService) List(ctx context.Context) ([]model.Row, error) {
	rows, err := s.repo.Select(ctx, repository.SelectOptions{})
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			return nil, model.ErrNoResult
		}
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(rows)).Msg("retrieved products")
	return rows, nil
}

// Get retrieves a single product by id.
func (s *productService) Get(ctx context.Context, id int64) (model.Row, error) {
	rows, err := s.repo.Select(ctx, repository.SelectOptions{
		Limit:   1,
		Filters: model.Filters{ID: &id},
	})
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			s.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, model.ErrNoResult
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return rows[0], nil
}

// Create inserts a product and fetches the stored row by the new id. The
// two statements are not transactional, so a concurrent delete of the new
// row makes the fetch fail.
func (s *productService) Create(ctx context.Context, name string, category model.Category, price decimal.Decimal) (model.Row, error) {
	id, err := s.repo.Insert(ctx, name, category, price)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, model.ErrDuplicate
		}
		s.logger.Error().Err(err).Str("name", name).Msg("failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	rows, err := s.repo.Select(ctx, repository.SelectOptions{
		Limit:   1,
		Filters: model.Filters{ID: &id},
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("product missing after insert")
		return nil, fmt.Errorf("product missing after insert: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Str("name", name).Msg("product created")
	return rows[0], nil
}

// Update assigns fields to the product with the given id. Zero affected
// rows surface as model.ErrNoResult.
func (s *productService) Update(ctx context.Context, id int64, fields model.Fields) error {
	affected, err := s.repo.Update(ctx, []model.Condition{{Column: model.ColumnID, Value: id}}, fields)
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			return model.ErrNoResult
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected == 0 {
		s.logger.Debug().Int64("product_id", id).Msg("product not found for update")
		return model.ErrNoResult
	}

	s.logger.Info().Int64("product_id", id).Int64("affected", affected).Msg("product updated")
	return nil
}

// Delete removes the product with the given id, confirming it exists
// first so a missing row is distinguishable from a successful delete.
func (s *productService) Delete(ctx context.Context, id int64) error {
	_, err := s.repo.Select(ctx, repository.SelectOptions{
		Columns: []string{model.ColumnID},
		Limit:   1,
		Filters: model.Filters{ID: &id},
	})
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			s.logger.Debug().Int64("product_id", id).Msg("product not found for delete")
			return model.ErrNoResult
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to check product before delete")
		return fmt.Errorf("failed to check product before delete: %w", err)
	}

	if err := s.repo.Delete(ctx, model.Condition{Column: model.ColumnID, Value: id}); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
