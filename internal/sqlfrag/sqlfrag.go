// Package sqlfrag assembles parameterized SQL fragments for the fixed
// product table. Column names are interpolated as trusted literals: callers
// validate them against the known column set before building a fragment,
// so this is a constrained builder, not a general-purpose one.
package sqlfrag

import (
	"fmt"
	"strings"
)

// quote wraps an identifier in double quotes.
func quote(ident string) string {
	return `"` + ident + `"`
}

// Columns returns the quoted, comma-joined column list.
func Columns(cols ...string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

// Placeholders returns n positional placeholders starting at start,
// e.g. Placeholders(1, 3) == "$1, $2, $3".
func Placeholders(start, n int) string {
	ps := make([]string, n)
	for i := 0; i < n; i++ {
		ps[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(ps, ", ")
}

// Where returns a conjunctive equality filter, e.g.
// Where(1, "name", "price") == `WHERE "name" = $1 AND "price" = $2`.
// Values are supplied separately by the caller in the same column order.
// An empty column list yields an empty string.
func Where(start int, cols ...string) string {
	if len(cols) == 0 {
		return ""
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", quote(c), start+i)
	}
	return "WHERE " + strings.Join(parts, " AND ")
}

// Set returns an assignment clause, e.g.
// Set(1, "name", "price") == `SET "name" = $1, "price" = $2`.
func Set(start int, cols ...string) string {
	if len(cols) == 0 {
		return ""
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", quote(c), start+i)
	}
	return "SET " + strings.Join(parts, ", ")
}

// OrderBy returns an ordering clause with a single direction applied to the
// whole clause, e.g. OrderBy(true, "price") == `ORDER BY "price" DESC`.
func OrderBy(desc bool, cols ...string) string {
	if len(cols) == 0 {
		return ""
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return "ORDER BY " + Columns(cols...) + " " + dir
}

// GroupBy returns a grouping clause over the given columns.
func GroupBy(cols ...string) string {
	if len(cols) == 0 {
		return ""
	}
	return "GROUP BY " + Columns(cols...)
}

// DeleteFrom returns a delete statement for table restricted by the given
// WHERE fragment.
func DeleteFrom(table, where string) string {
	if where == "" {
		return "DELETE FROM " + table
	}
	return "DELETE FROM " + table + " " + where
}
