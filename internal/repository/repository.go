package repository

import (
	"context"

	"cantina-api/internal/model"

	"github.com/shopspring/decimal"
)

// SelectOptions shapes a select statement. The zero value selects every
// column of every row in natural order.
type SelectOptions struct {
	// Columns is the projection; empty means all columns.
	Columns []string

	// OrderBy lists ordering columns; Desc applies one direction to the
	// whole clause.
	OrderBy []string
	Desc    bool

	// GroupBy lists grouping columns.
	GroupBy []string

	// Limit caps the number of returned rows; zero or negative means all.
	Limit int

	// Filters restricts rows by equality on known columns.
	Filters model.Filters
}

// ProductRepository defines the data-access operations for the product
// table. Every operation opens its own connection, runs a single
// statement and closes; there is no pooling and no cross-statement
// transaction.
type ProductRepository interface {
	// Init creates the database and table if absent by running the bundled
	// schema script. It is idempotent per session; Invalidate or Drop make
	// the next call run the script again.
	Init(ctx context.Context) error

	// Drop removes the whole database. Without force it no-ops when the
	// session never initialized.
	Drop(ctx context.Context, force bool) error

	// Probe reports whether the database server is reachable. Connection
	// errors are swallowed into false.
	Probe(ctx context.Context) bool

	// Invalidate forgets that initialization ran, so the next Init
	// re-executes the schema script.
	Invalidate()

	// Initialized reports whether this session has initialized the schema.
	Initialized() bool

	// Insert adds a product and returns its database-assigned id.
	Insert(ctx context.Context, name string, category model.Category, price decimal.Decimal) (int64, error)

	// Select returns matching rows with time_stamp display-formatted.
	// Zero matching rows yield model.ErrNoResult, not an empty list.
	Select(ctx context.Context, opts SelectOptions) ([]model.Row, error)

	// Update assigns fields on rows matching every condition and returns
	// the number of affected rows. SET values bind before WHERE values.
	Update(ctx context.Context, conditions []model.Condition, fields model.Fields) (int64, error)

	// Delete removes rows matching every condition. At least one condition
	// is required.
	Delete(ctx context.Context, conditions ...model.Condition) error
}
