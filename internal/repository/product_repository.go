package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cantina-api/internal/config"
	"cantina-api/internal/flatten"
	"cantina-api/internal/model"
	"cantina-api/internal/sqlfrag"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schemaSQL string

// tableRef is the quoted product table name, baked in at package scope.
const tableRef = `"produtos"`

const uniqueViolationCode = "23505"

// productRepository implements ProductRepository against PostgreSQL with
// one short-lived connection per operation.
type productRepository struct {
	cfg    config.DatabaseConfig
	logger zerolog.Logger

	mu          sync.Mutex
	initialized bool
}

// NewProductRepository creates a PostgreSQL-backed product repository.
func NewProductRepository(cfg config.DatabaseConfig, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		cfg:    cfg,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// connect opens a connection to the application database. It refuses to
// connect before the session has initialized the schema.
func (r *productRepository) connect(ctx context.Context) (*pgx.Conn, error) {
	r.mu.Lock()
	ok := r.initialized
	r.mu.Unlock()
	if !ok {
		return nil, model.ErrNotInitialized
	}
	conn, err := pgx.Connect(ctx, r.cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// adminConnect opens a connection to the maintenance database, used for
// creating, dropping and probing the application database.
func (r *productRepository) adminConnect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, r.cfg.AdminConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	return conn, nil
}

// Init creates the application database if absent and runs every statement
// of the bundled schema script against it. Subsequent calls no-op until
// Invalidate or Drop.
func (r *productRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.initialized {
		return nil
	}

	if err := r.ensureDatabase(ctx); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, r.cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	r.initialized = true
	r.logger.Info().Str("database", r.cfg.Database).Msg("database initialized")
	return nil
}

// ensureDatabase creates the application database when it does not exist.
func (r *productRepository) ensureDatabase(ctx context.Context) error {
	conn, err := r.adminConnect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)",
		r.cfg.Database,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	dbRef := pgx.Identifier{r.cfg.Database}.Sanitize()
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+dbRef); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	r.logger.Info().Str("database", r.cfg.Database).Msg("database created")
	return nil
}

// Drop removes the application database. Without force it no-ops when this
// session never initialized.
func (r *productRepository) Drop(ctx context.Context, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized && !force {
		return nil
	}

	conn, err := r.adminConnect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	dbRef := pgx.Identifier{r.cfg.Database}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+dbRef+" WITH (FORCE)"); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	r.initialized = false
	r.logger.Info().Str("database", r.cfg.Database).Msg("database dropped")
	return nil
}

// Probe attempts a bare server connection and reports reachability,
// swallowing connection errors into false.
func (r *productRepository) Probe(ctx context.Context) bool {
	conn, err := r.adminConnect(ctx)
	if err != nil {
		r.logger.Debug().Err(err).Msg("probe failed")
		return false
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		r.logger.Debug().Err(err).Msg("probe ping failed")
		return false
	}
	return true
}

// Invalidate forgets that initialization ran this session.
func (r *productRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = false
}

// Initialized reports whether this session has initialized the schema.
func (r *productRepository) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// Insert adds a product and returns its database-assigned id. A uniqueness
// violation surfaces as model.ErrDuplicate.
func (r *productRepository) Insert(ctx context.Context, name string, category model.Category, price decimal.Decimal) (int64, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close(ctx)

	cols := model.InsertColumns()
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		tableRef,
		sqlfrag.Columns(cols...),
		sqlfrag.Placeholders(1, len(cols)),
		sqlfrag.Columns(model.ColumnID),
	)

	var id int64
	err = conn.QueryRow(ctx, query, name, string(category), price).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.logger.Debug().Str("name", name).Msg("duplicate product")
			return 0, model.ErrDuplicate
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to insert product")
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

// Select builds and executes one SELECT ... WHERE ... GROUP BY ... ORDER BY
// statement. Zero matching rows yield model.ErrNoResult so callers can tell
// "no match" from an empty projection.
func (r *productRepository) Select(ctx context.Context, opts SelectOptions) ([]model.Row, error) {
	cols := opts.Columns
	if len(cols) == 0 {
		cols = model.Columns()
	}
	if err := validateColumns(cols); err != nil {
		return nil, err
	}
	if err := validateColumns(opts.OrderBy); err != nil {
		return nil, err
	}
	if err := validateColumns(opts.GroupBy); err != nil {
		return nil, err
	}

	filterCols, filterVals := opts.Filters.Pairs()

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(sqlfrag.Columns(cols...))
	b.WriteString(" FROM ")
	b.WriteString(tableRef)
	if frag := sqlfrag.Where(1, filterCols...); frag != "" {
		b.WriteString(" ")
		b.WriteString(frag)
	}
	if frag := sqlfrag.GroupBy(opts.GroupBy...); frag != "" {
		b.WriteString(" ")
		b.WriteString(frag)
	}
	if frag := sqlfrag.OrderBy(opts.Desc, opts.OrderBy...); frag != "" {
		b.WriteString(" ")
		b.WriteString(frag)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", opts.Limit)
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, b.String(), filterVals...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	selected, err := scanRows(rows, cols)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan product rows")
		return nil, err
	}
	if len(selected) == 0 {
		return nil, model.ErrNoResult
	}
	return selected, nil
}

// Update assigns fields on every row matching the conditions and returns
// the number of affected rows. Condition pairs are flattened into
// alternating column/value slots; SET values bind before WHERE values.
func (r *productRepository) Update(ctx context.Context, conditions []model.Condition, fields model.Fields) (int64, error) {
	setCols, setVals := fields.Pairs()
	if len(setCols) == 0 {
		return 0, model.ErrNoResult
	}
	if err := validateColumns(setCols); err != nil {
		return 0, err
	}

	condCols, condVals, err := splitConditions(conditions)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		"UPDATE %s %s",
		tableRef,
		sqlfrag.Set(1, setCols...),
	)
	if frag := sqlfrag.Where(1+len(setCols), condCols...); frag != "" {
		query += " " + frag
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close(ctx)

	args := append(setVals, condVals...)
	tag, err := conn.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to update products")
		return 0, fmt.Errorf("failed to update products: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes every row matching the conditions. At least one condition
// is required; an unconditional delete would empty the table.
func (r *productRepository) Delete(ctx context.Context, conditions ...model.Condition) error {
	if len(conditions) == 0 {
		return model.ErrNoResult
	}

	condCols, condVals, err := splitConditions(conditions)
	if err != nil {
		return err
	}

	query := sqlfrag.DeleteFrom(tableRef, sqlfrag.Where(1, condCols...))

	conn, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, query, condVals...); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete products")
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

// splitConditions flattens condition pairs into alternating column/value
// slots and splits the even-indexed columns from the odd-indexed values.
func splitConditions(conditions []model.Condition) ([]string, []any, error) {
	nested := make([]any, 0, len(conditions))
	for _, c := range conditions {
		nested = append(nested, []any{c.Column, normalizeValue(c.Value)})
	}

	flat := flatten.Flatten(nested)
	cols := make([]string, 0, len(conditions))
	for _, e := range flatten.Even(flat) {
		name, ok := e.(string)
		if !ok {
			return nil, nil, model.NewDomainError(model.ErrCodeInvalidColumn, fmt.Sprintf("condition column %v is not a string", e))
		}
		cols = append(cols, name)
	}
	if err := validateColumns(cols); err != nil {
		return nil, nil, err
	}
	return cols, flatten.Odd(flat), nil
}

// normalizeValue maps condition values to their stored representation:
// categories to their string value, numeric input to exact decimals
// converted through text, never through a binary float.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case model.Category:
		return string(t)
	case float64:
		return decimal.NewFromFloat(t)
	case json.Number:
		if d, err := decimal.NewFromString(t.String()); err == nil {
			return d
		}
		return t.String()
	default:
		return v
	}
}

// validateColumns rejects any column outside the known enumeration before
// it can reach a SQL fragment.
func validateColumns(cols []string) error {
	for _, c := range cols {
		if !model.IsColumn(c) {
			return model.NewDomainError(model.ErrCodeInvalidColumn, fmt.Sprintf("unknown column %q", c))
		}
	}
	return nil
}

// scanRows reads every row into a column-keyed map, formatting time_stamp
// for display.
func scanRows(rows pgx.Rows, cols []string) ([]model.Row, error) {
	var selected []model.Row
	for rows.Next() {
		var (
			id       int64
			name     string
			category string
			price    decimal.Decimal
			ts       time.Time
		)
		dest := make([]any, len(cols))
		for i, c := range cols {
			switch c {
			case model.ColumnID:
				dest[i] = &id
			case model.ColumnName:
				dest[i] = &name
			case model.ColumnCategory:
				dest[i] = &category
			case model.ColumnPrice:
				dest[i] = &price
			case model.ColumnTimeStamp:
				dest[i] = &ts
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		row := model.Row{}
		for _, c := range cols {
			switch c {
			case model.ColumnID:
				row[c] = id
			case model.ColumnName:
				row[c] = name
			case model.ColumnCategory:
				row[c] = model.Category(category)
			case model.ColumnPrice:
				row[c] = price
			case model.ColumnTimeStamp:
				row[c] = ts.Format(model.TimeFormat)
			}
		}
		selected = append(selected, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return selected, nil
}
