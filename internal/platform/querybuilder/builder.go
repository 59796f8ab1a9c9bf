// Package querybuilder renders small postgres statements with $n placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrMissingTable   = errors.New("querybuilder: table is required")
	ErrMissingColumns = errors.New("querybuilder: columns are required")
	ErrMissingRows    = errors.New("querybuilder: at least one row is required")
)

// writer accumulates SQL text and its positional arguments.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteString("$")
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) result() (string, []any) {
	return w.sb.String(), w.args
}

// Condition is one AND-ed predicate of a WHERE clause.
type Condition interface {
	render(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) render(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.text(column, " = ")
		w.bind(value)
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	conds   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, ErrMissingColumns
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, ErrMissingTable
	}
	var w writer
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.conds)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	query, args := w.result()
	return query, args, nil
}

type DeleteBuilder struct {
	table string
	conds []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, ErrMissingTable
	}
	var w writer
	w.text("DELETE FROM ", b.table)
	w.where(b.conds)
	query, args := w.result()
	return query, args, nil
}

type InsertBuilder struct {
	table    string
	columns  []string
	rows     [][]any
	conflict []string
	updates  []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// OnConflict names the conflict target; follow with DoUpdate.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflict = columns
	return b
}

// DoUpdate overwrites the listed columns from EXCLUDED. With no columns every
// non-conflict column is overwritten; if none remain the conflict does nothing.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.updates = columns
	if len(columns) == 0 {
		b.updates = nonConflictColumns(b.columns, b.conflict)
	}
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, ErrMissingTable
	}
	if len(b.columns) == 0 {
		return "", nil, ErrMissingColumns
	}
	if len(b.rows) == 0 {
		return "", nil, ErrMissingRows
	}

	var w writer
	w.text("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, errors.New("querybuilder: row " + strconv.Itoa(i) + " has " +
				strconv.Itoa(len(row)) + " values, expected " + strconv.Itoa(len(b.columns)))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, v := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	}

	if len(b.conflict) > 0 {
		w.text(" ON CONFLICT (", strings.Join(b.conflict, ", "), ")")
		switch {
		case len(b.updates) == 0:
			w.text(" DO NOTHING")
		default:
			sets := make([]string, 0, len(b.updates))
			for _, col := range b.updates {
				sets = append(sets, col+" = EXCLUDED."+col)
			}
			w.text(" DO UPDATE SET ", strings.Join(sets, ", "))
		}
	}

	query, args := w.result()
	return query, args, nil
}

func nonConflictColumns(columns, conflict []string) []string {
	skip := make(map[string]struct{}, len(conflict))
	for _, c := range conflict {
		skip[c] = struct{}{}
	}
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
