package model

import "github.com/shopspring/decimal"

// Condition pairs a column with the value a row must match. Condition lists
// are flattened into alternating column/value slots before binding.
type Condition struct {
	Column string
	Value  any
}

// Fields selects the subset of mutable columns an update assigns. A nil
// slot leaves that column untouched.
type Fields struct {
	Name     *string
	Category *Category
	Price    *decimal.Decimal
}

// Pairs returns the assigned columns and their normalized values, in
// natural column order.
func (f Fields) Pairs() ([]string, []any) {
	var cols []string
	var vals []any
	if f.Name != nil {
		cols = append(cols, ColumnName)
		vals = append(vals, *f.Name)
	}
	if f.Category != nil {
		cols = append(cols, ColumnCategory)
		vals = append(vals, string(*f.Category))
	}
	if f.Price != nil {
		cols = append(cols, ColumnPrice)
		vals = append(vals, *f.Price)
	}
	return cols, vals
}

// Empty reports whether no field is assigned.
func (f Fields) Empty() bool {
	return f.Name == nil && f.Category == nil && f.Price == nil
}

// Filters restricts a select to rows matching the given columns. A nil
// slot does not filter on that column.
type Filters struct {
	ID       *int64
	Name     *string
	Category *Category
	Price    *decimal.Decimal
}

// Pairs returns the filtering columns and their normalized values, in
// natural column order.
func (f Filters) Pairs() ([]string, []any) {
	var cols []string
	var vals []any
	if f.ID != nil {
		cols = append(cols, ColumnID)
		vals = append(vals, *f.ID)
	}
	if f.Name != nil {
		cols = append(cols, ColumnName)
		vals = append(vals, *f.Name)
	}
	if f.Category != nil {
		cols = append(cols, ColumnCategory)
		vals = append(vals, string(*f.Category))
	}
	if f.Price != nil {
		cols = append(cols, ColumnPrice)
		vals = append(vals, *f.Price)
	}
	return cols, vals
}
