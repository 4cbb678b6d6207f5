package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TimeFormat is the display format for product timestamps.
const TimeFormat = "02/01/2006 - 15:04:05"

// Category is a product category. The set of values is closed and input is
// validated against it at the API boundary. The schema carries no matching
// constraint, so a direct write could store anything (kept that way on
// purpose, see schema.sql).
type Category string

// The allowed product categories, persisted as their string values.
const (
	CategorySalgados  Category = "salgados"
	CategoryDoces     Category = "doces"
	CategoryBebidas   Category = "bebidas"
	CategoryRefeicoes Category = "refeições"
)

// Categories returns every allowed category value.
func Categories() []Category {
	return []Category{CategorySalgados, CategoryDoces, CategoryBebidas, CategoryRefeicoes}
}

// Valid reports whether c is a member of the category set.
func (c Category) Valid() bool {
	switch c {
	case CategorySalgados, CategoryDoces, CategoryBebidas, CategoryRefeicoes:
		return true
	}
	return false
}

// Product represents a product in the canteen catalogue.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Category  Category        `json:"category" db:"category"`
	Price     decimal.Decimal `json:"price" db:"price"`
	TimeStamp Timestamp       `json:"time_stamp" db:"time_stamp"`
}

// Timestamp is a creation time that marshals in the display format
// DD/MM/YYYY - HH:MM:SS.
type Timestamp time.Time

// MarshalJSON renders the timestamp in the display format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(TimeFormat))
}

func (t Timestamp) String() string {
	return time.Time(t).Format(TimeFormat)
}

// Row is a selected table row keyed by column name, the shape handed back
// to API clients. The time_stamp value is already display-formatted.
type Row map[string]any

// The known table columns.
const (
	ColumnID        = "id"
	ColumnName      = "name"
	ColumnCategory  = "category"
	ColumnPrice     = "price"
	ColumnTimeStamp = "time_stamp"
)

// Columns returns every table column in natural order.
func Columns() []string {
	return []string{ColumnID, ColumnName, ColumnCategory, ColumnPrice, ColumnTimeStamp}
}

// InsertColumns returns the caller-supplied columns of an insert; id and
// time_stamp are database-assigned.
func InsertColumns() []string {
	return []string{ColumnName, ColumnCategory, ColumnPrice}
}

// IsColumn reports whether name is a known table column.
func IsColumn(name string) bool {
	switch name {
	case ColumnID, ColumnName, ColumnCategory, ColumnPrice, ColumnTimeStamp:
		return true
	}
	return false
}
