// Package querybuilder assembles parameterized Postgres statements for the
// repository layer. It covers the handful of shapes the repositories need
// rather than a full SQL dialect.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate and appends its arguments.
type Condition interface {
	render(argIndex *int, args *[]any) (string, error)
}

type eqCondition struct {
	column string
	value  any
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(argIndex *int, args *[]any) (string, error) {
	if strings.TrimSpace(c.column) == "" {
		return "", fmt.Errorf("eq condition requires a column")
	}
	*argIndex++
	*args = append(*args, c.value)
	return c.column + " = $" + strconv.Itoa(*argIndex), nil
}

type inCondition struct {
	column string
	values []any
}

// In matches column IN (values...). An empty value list is rejected so a
// programming mistake cannot silently match every row.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) render(argIndex *int, args *[]any) (string, error) {
	if strings.TrimSpace(c.column) == "" {
		return "", fmt.Errorf("in condition requires a column")
	}
	if len(c.values) == 0 {
		return "", fmt.Errorf("in condition for %s requires at least one value", c.column)
	}

	placeholders := make([]string, 0, len(c.values))
	for _, value := range c.values {
		*argIndex++
		*args = append(*args, value)
		placeholders = append(placeholders, "$"+strconv.Itoa(*argIndex))
	}
	return c.column + " IN (" + strings.Join(placeholders, ", ") + ")", nil
}

type isNullCondition struct {
	column string
}

// IsNull matches column IS NULL.
func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(_ *int, _ *[]any) (string, error) {
	if strings.TrimSpace(c.column) == "" {
		return "", fmt.Errorf("is-null condition requires a column")
	}
	return c.column + " IS NULL", nil
}

type exprCondition struct {
	expr string
	args []any
}

// Expr injects a raw predicate with `$?` placeholders, rewritten to the
// correct positional arguments at render time.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) render(argIndex *int, args *[]any) (string, error) {
	if strings.TrimSpace(c.expr) == "" {
		return "", fmt.Errorf("expr condition requires an expression")
	}
	if strings.Count(c.expr, "$?") != len(c.args) {
		return "", fmt.Errorf("expr condition %q expects %d args, got %d", c.expr, strings.Count(c.expr, "$?"), len(c.args))
	}

	rendered := c.expr
	for _, value := range c.args {
		*argIndex++
		*args = append(*args, value)
		rendered = strings.Replace(rendered, "$?", "$"+strconv.Itoa(*argIndex), 1)
	}
	return rendered, nil
}

// SelectBuilder builds a SELECT statement.
type SelectBuilder struct {
	columns    []string
	table      string
	conditions []Condition
	orderBy    []string
	limit      int
	hasLimit   bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.conditions = append(b.conditions, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	b.hasLimit = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select requires at least one column")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select requires a table")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	args := make([]any, 0, len(b.conditions))
	argIndex := 0
	if len(b.conditions) > 0 {
		rendered := make([]string, 0, len(b.conditions))
		for _, condition := range b.conditions {
			fragment, err := condition.render(&argIndex, &args)
			if err != nil {
				return "", nil, err
			}
			rendered = append(rendered, fragment)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(rendered, " AND "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.hasLimit {
		if b.limit <= 0 {
			return "", nil, fmt.Errorf("limit must be > 0")
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}

	return sb.String(), args, nil
}

// InsertBuilder builds a multi-row INSERT statement.
type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append(b.columns, columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends a trailing clause such as ON CONFLICT ... or RETURNING.
func (b *InsertBuilder) Suffix(suffix string) *InsertBuilder {
	b.suffix = suffix
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert requires a table")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert requires at least one column")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert requires at least one row")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 0
	rowFragments := make([]string, 0, len(b.rows))
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		placeholders := make([]string, 0, len(row))
		for _, value := range row {
			argIndex++
			args = append(args, value)
			placeholders = append(placeholders, "$"+strconv.Itoa(argIndex))
		}
		rowFragments = append(rowFragments, "("+strings.Join(placeholders, ", ")+")")
	}
	sb.WriteString(strings.Join(rowFragments, ", "))

	if strings.TrimSpace(b.suffix) != "" {
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSpace(b.suffix))
	}

	return sb.String(), args, nil
}
