// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"fmt"
	"strings"
)

// OrderKey is one sort key of an orderBy step.
type OrderKey struct {
	Column     string
	Descending bool
}

// Query is an immutable builder over one cached table. Builder
// methods return a new builder with the step added; terminal
// operations apply the plan once, in this order: row index, range,
// filter, order, offset, limit, column projection. Plans never mutate
// the cached rows.
type Query struct {
	mgr   *Manager
	table *Table

	cols    []string
	where   Predicate
	order   []OrderKey
	limit   *int
	offset  *int
	rowIdx  *int
	rngFrom *int
	rngTo   *int
	cellR   *int
	cellC   *int
	def     interface{}
	hasDef  bool
}

func (q *Query) clone() *Query {
	c := *q
	return &c
}

// Select projects the result rows to the named columns.
func (q *Query) Select(cols []string) *Query {
	c := q.clone()
	c.cols = append([]string(nil), cols...)
	return c
}

// Where filters rows. Chained calls conjoin: q.Where(p).Where(r) is
// q.Where(And(p, r)).
func (q *Query) Where(p Predicate) *Query {
	c := q.clone()
	if c.where != nil {
		c.where = And(c.where, p)
	} else {
		c.where = p
	}
	return c
}

// OrderBy sorts by the given keys, first key dominating.
func (q *Query) OrderBy(keys []OrderKey) *Query {
	c := q.clone()
	c.order = append([]OrderKey(nil), keys...)
	return c
}

// Limit caps the number of result rows.
func (q *Query) Limit(n int) *Query {
	c := q.clone()
	c.limit = &n
	return c
}

// Offset skips the first n result rows.
func (q *Query) Offset(n int) *Query {
	c := q.clone()
	c.offset = &n
	return c
}

// Row narrows the query to the single 1-based row index.
func (q *Query) Row(i int) *Query {
	c := q.clone()
	c.rowIdx = &i
	return c
}

// Range narrows the query to the 1-based inclusive row range.
func (q *Query) Range(from, to int) *Query {
	c := q.clone()
	c.rngFrom, c.rngTo = &from, &to
	return c
}

// Cell narrows the query to a single cell by 1-based row and column.
func (q *Query) Cell(row, col int) *Query {
	c := q.clone()
	c.cellR, c.cellC = &row, &col
	return c
}

// Default sets the value returned by scalar terminals on an empty
// result.
func (q *Query) Default(v interface{}) *Query {
	c := q.clone()
	c.def = v
	c.hasDef = true
	return c
}

// --------------------------------------------------
// Plan application
// --------------------------------------------------

// key fingerprints the plan for the result memo.
func (q *Query) key() string {

	var b strings.Builder

	fmt.Fprintf(&b, "%s@%s", q.table.Name, q.table.Version)

	if q.rowIdx != nil {
		fmt.Fprintf(&b, "|row:%d", *q.rowIdx)
	}
	if q.rngFrom != nil {
		fmt.Fprintf(&b, "|rng:%d..%d", *q.rngFrom, *q.rngTo)
	}
	if q.cellR != nil {
		fmt.Fprintf(&b, "|cell:%d,%d", *q.cellR, *q.cellC)
	}
	if q.where != nil {
		fmt.Fprintf(&b, "|where:%s", q.where.Key())
	}
	for _, k := range q.order {
		fmt.Fprintf(&b, "|ord:%s/%v", k.Column, k.Descending)
	}
	if q.offset != nil {
		fmt.Fprintf(&b, "|off:%d", *q.offset)
	}
	if q.limit != nil {
		fmt.Fprintf(&b, "|lim:%d", *q.limit)
	}
	if len(q.cols) > 0 {
		fmt.Fprintf(&b, "|sel:%s", strings.Join(q.cols, ","))
	}

	return b.String()

}

// Execute materialises the plan. Results are memoised per table
// version; a memo miss recomputes from the cached snapshot.
func (q *Query) Execute() []Row {

	key := q.key()

	if q.mgr != nil {
		if v, ok := q.mgr.memo.Get(key); ok {
			if rows, ok := v.([]Row); ok {
				return rows
			}
		}
	}

	rows := q.table.Rows

	if q.rowIdx != nil {
		i := *q.rowIdx - 1
		if i < 0 || i >= len(rows) {
			rows = nil
		} else {
			rows = rows[i : i+1]
		}
	}

	if q.rngFrom != nil && q.rngTo != nil {
		from, to := *q.rngFrom-1, *q.rngTo
		if from < 0 {
			from = 0
		}
		if to > len(rows) {
			to = len(rows)
		}
		if from >= to {
			rows = nil
		} else {
			rows = rows[from:to]
		}
	}

	if q.cellR != nil && q.cellC != nil {
		rows = q.cellRows(rows)
	}

	if q.where != nil {
		filtered := make([]Row, 0, len(rows))
		for _, r := range rows {
			if q.where.Match(r) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if len(q.order) > 0 {
		rows = sortRows(rows, q.order)
	}

	if q.offset != nil {
		if *q.offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[*q.offset:]
		}
	}

	if q.limit != nil && *q.limit < len(rows) {
		rows = rows[:*q.limit]
	}

	if len(q.cols) > 0 {
		projected := make([]Row, len(rows))
		for i, r := range rows {
			p := make(Row, len(q.cols))
			for _, c := range q.cols {
				p[c] = r[c]
			}
			projected[i] = p
		}
		rows = projected
	}

	if q.mgr != nil {
		q.mgr.memo.Set(key, rows, int64(len(rows)+1))
	}

	return rows

}

// cellRows narrows to the single addressed cell.
func (q *Query) cellRows(rows []Row) []Row {

	r := *q.cellR - 1
	if r < 0 || r >= len(rows) {
		return nil
	}

	c := *q.cellC - 1
	if c < 0 || c >= len(q.table.Columns) {
		return nil
	}

	col := q.table.Columns[c]

	return []Row{{col: rows[r][col]}}

}

// --------------------------------------------------
// Terminals
// --------------------------------------------------

// First returns the first result row, the default on empty.
func (q *Query) First() interface{} {
	rows := q.Execute()
	if len(rows) == 0 {
		return q.empty()
	}
	return rows[0]
}

// Last returns the last result row, the default on empty.
func (q *Query) Last() interface{} {
	rows := q.Execute()
	if len(rows) == 0 {
		return q.empty()
	}
	return rows[len(rows)-1]
}

// Random returns a random result row using the engine RNG.
func (q *Query) Random() interface{} {
	rows := q.Execute()
	if len(rows) == 0 {
		return q.empty()
	}
	return rows[q.mgr.rng.Intn(len(rows))]
}

func (q *Query) empty() interface{} {
	if q.hasDef {
		return q.def
	}
	return nil
}

// Count returns the number of result rows.
func (q *Query) Count() int {
	return len(q.Execute())
}

// Sum totals a column over the result rows.
func (q *Query) Sum(col string) float64 {
	var total float64
	for _, r := range q.Execute() {
		total += asNumber(r[col])
	}
	return total
}

// Average returns the mean of a column, 0 on empty.
func (q *Query) Average(col string) float64 {
	rows := q.Execute()
	if len(rows) == 0 {
		return 0
	}
	var total float64
	for _, r := range rows {
		total += asNumber(r[col])
	}
	return total / float64(len(rows))
}

// Min returns the smallest value of a column, 0 on empty.
func (q *Query) Min(col string) float64 {
	rows := q.Execute()
	if len(rows) == 0 {
		return 0
	}
	min := asNumber(rows[0][col])
	for _, r := range rows[1:] {
		if v := asNumber(r[col]); v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value of a column, 0 on empty.
func (q *Query) Max(col string) float64 {
	rows := q.Execute()
	if len(rows) == 0 {
		return 0
	}
	max := asNumber(rows[0][col])
	for _, r := range rows[1:] {
		if v := asNumber(r[col]); v > max {
			max = v
		}
	}
	return max
}

// Distinct returns the unique values of a column in first-occurrence
// order.
func (q *Query) Distinct(col string) []interface{} {
	seen := make(map[string]bool)
	out := []interface{}{}
	for _, r := range q.Execute() {
		k := asString(r[col])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r[col])
	}
	return out
}

// CountDistinct counts the unique values of a column.
func (q *Query) CountDistinct(col string) int {
	return len(q.Distinct(col))
}

// RowCount returns the number of result rows.
func (q *Query) RowCount() int {
	return len(q.Execute())
}

// ColumnCount returns the table's column count.
func (q *Query) ColumnCount() int {
	return len(q.table.Columns)
}

// Headers returns a copy of the table's column names.
func (q *Query) Headers() []string {
	return append([]string(nil), q.table.Columns...)
}
