package service

import (
	"context"
	"errors"
	"testing"

	"cantina-api/internal/model"
	"cantina-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProductRepository) Drop(ctx context.Context, force bool) error {
	return m.Called(ctx, force).Error(0)
}

func (m *MockProductRepository) Probe(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockProductRepository) Invalidate() {
	m.Called()
}

func (m *MockProductRepository) Initialized() bool {
	return m.Called().Bool(0)
}

func (m *MockProductRepository) Insert(ctx context.Context, name string, category model.Category, price decimal.Decimal) (int64, error) {
	args := m.Called(ctx, name, category, price)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Select(ctx context.Context, opts repository.SelectOptions) ([]model.Row, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Row), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, conditions []model.Condition, fields model.Fields) (int64, error) {
	args := m.Called(ctx, conditions, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, conditions ...model.Condition) error {
	return m.Called(ctx, conditions).Error(0)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns rows", func(t *testing.T) {
		repo := new(MockProductRepository)
		rows := []model.Row{{"id": int64(1), "name": "Coxinha"}}
		repo.On("Select", ctx, repository.SelectOptions{}).Return(rows, nil)

		svc := NewProductService(repo, zerolog.Nop())
		got, err := svc.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, rows, got)
		repo.AssertExpectations(t)
	})

	t.Run("Empty table surfaces the sentinel", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Select", ctx, repository.SelectOptions{}).Return(nil, model.ErrNoResult)

		svc := NewProductService(repo, zerolog.Nop())
		_, err := svc.List(ctx)

		assert.ErrorIs(t, err, model.ErrNoResult)
	})
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()
	id := int64(7)

	t.Run("Found", func(t *testing.T) {
		repo := new(MockProductRepository)
		rows := []model.Row{{"id": id, "name": "Café"}}
		repo.On("Select", ctx, mock.MatchedBy(func(opts repository.SelectOptions) bool {
			return opts.Filters.ID != nil && *opts.Filters.ID == id && opts.Limit == 1
		})).Return(rows, nil)

		svc := NewProductService(repo, zerolog.Nop())
		got, err := svc.Get(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, rows[0], got)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Select", ctx, mock.Anything).Return(nil, model.ErrNoResult)

		svc := NewProductService(repo, zerolog.Nop())
		_, err := svc.Get(ctx, id)

		assert.ErrorIs(t, err, model.ErrNoResult)
	})
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	price := decimal.RequireFromString("5.20")

	t.Run("Insert then fetch by new id", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Insert", ctx, "Coxinha", model.CategorySalgados, price).Return(int64(3), nil)
		stored := []model.Row{{"id": int64(3), "name": "Coxinha"}}
		repo.On("Select", ctx, mock.MatchedBy(func(opts repository.SelectOptions) bool {
			return opts.Filters.ID != nil && *opts.Filters.ID == int64(3)
		})).Return(stored, nil)

		svc := NewProductService(repo, zerolog.Nop())
		row, err := svc.Create(ctx, "Coxinha", model.CategorySalgados, price)

		require.NoError(t, err)
		assert.Equal(t, stored[0], row)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate propagates", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Insert", ctx, "Coxinha", model.CategorySalgados, price).Return(int64(0), model.ErrDuplicate)

		svc := NewProductService(repo, zerolog.Nop())
		_, err := svc.Create(ctx, "Coxinha", model.CategorySalgados, price)

		assert.ErrorIs(t, err, model.ErrDuplicate)
		repo.AssertNotCalled(t, "Select", mock.Anything, mock.Anything)
	})

	t.Run("Row missing after insert", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Insert", ctx, "Coxinha", model.CategorySalgados, price).Return(int64(3), nil)
		repo.On("Select", ctx, mock.Anything).Return(nil, model.ErrNoResult)

		svc := NewProductService(repo, zerolog.Nop())
		_, err := svc.Create(ctx, "Coxinha", model.CategorySalgados, price)

		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrDuplicate)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	name := "Maçã"
	fields := model.Fields{Name: &name}

	t.Run("Affected row", func(t *testing.T) {
		repo := new(MockProductRepository)
		conds := []model.Condition{{Column: model.ColumnID, Value: int64(4)}}
		repo.On("Update", ctx, conds, fields).Return(int64(1), nil)

		svc := NewProductService(repo, zerolog.Nop())
		assert.NoError(t, svc.Update(ctx, 4, fields))
	})

	t.Run("Zero affected rows is not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Update", ctx, mock.Anything, fields).Return(int64(0), nil)

		svc := NewProductService(repo, zerolog.Nop())
		assert.ErrorIs(t, svc.Update(ctx, 4, fields), model.ErrNoResult)
	})

	t.Run("Repository error wraps", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Update", ctx, mock.Anything, fields).Return(int64(0), errors.New("boom"))

		svc := NewProductService(repo, zerolog.Nop())
		err := svc.Update(ctx, 4, fields)

		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNoResult)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Select", ctx, mock.Anything).Return([]model.Row{{"id": int64(9)}}, nil)
		repo.On("Delete", ctx, []model.Condition{{Column: model.ColumnID, Value: int64(9)}}).Return(nil)

		svc := NewProductService(repo, zerolog.Nop())
		assert.NoError(t, svc.Delete(ctx, 9))
		repo.AssertExpectations(t)
	})

	t.Run("Missing product short-circuits", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Select", ctx, mock.Anything).Return(nil, model.ErrNoResult)

		svc := NewProductService(repo, zerolog.Nop())
		assert.ErrorIs(t, svc.Delete(ctx, 9), model.ErrNoResult)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
