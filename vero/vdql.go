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

package vero

var resultKinds = map[Kind]ResultType{
	ROW:    ResultData,
	DATA:   ResultData,
	ROWS:   ResultList,
	LIST:   ResultList,
	TEXT:   ResultText,
	NUMBER: ResultNumber,
	FLAG:   ResultFlag,
}

var aggKinds = map[Kind]AggFunc{
	COUNT:    AggCount,
	SUM:      AggSum,
	AVERAGE:  AggAverage,
	MIN:      AggMin,
	MAX:      AggMax,
	DISTINCT: AggDistinct,
	ROWS:     AggRows,
	COLUMNS:  AggColumns,
	HEADERS:  AggHeaders,
}

// parseDataQuery parses the typed VDQL binding statements:
//
//	ROW  x [FROM|=] [FIRST|LAST|RANDOM] <tableRef> [WHERE ...] [ORDER BY ...]
//	ROWS x [FROM|=] <tableRef> [WHERE ...] [ORDER BY ...] [LIMIT n] [OFFSET n]
//	NUMBER x = COUNT|SUM|AVERAGE|MIN|MAX [DISTINCT] <tableRef> [WHERE ...]
//
// with TEXT, FLAG, DATA and LIST following the same shapes.
func (p *parser) parseDataQuery() Statement {

	lead := p.next()

	st := &DataQueryStatement{
		stmtBase:   stmtBase{lead.Line},
		ResultType: resultKinds[lead.Kind],
		Query:      &DataQuery{},
	}

	name, ok := p.parseName()
	if !ok {
		p.syncBlock()
		return nil
	}
	st.Variable = name

	if _, ok := p.shouldBe(FROM, EQ); !ok {
		p.syncBlock()
		return nil
	}

	q := st.Query

	// An aggregation function may open the query.
	if fn, ok := aggKinds[p.peek().Kind]; ok && p.peekAt(1).Kind != DOT && p.peekAt(1).Kind != EQ {
		p.next()
		q.Function = fn
		if fn == AggCount {
			if _, ok := p.mightBe(DISTINCT); ok {
				q.Distinct = true
			}
		}
	}

	// A row position may prefix the table reference.
	switch {
	case p.at(FIRST):
		p.next()
		q.Position = PosFirst
	case p.at(LAST):
		p.next()
		q.Position = PosLast
	case p.at(RANDOM):
		p.next()
		q.Position = PosRandom
	}

	ref, ok := p.parseTableRef()
	if !ok {
		p.syncBlock()
		return nil
	}
	q.Ref = ref

	// Single-row result types default to taking the first row.
	if q.Position == PosNone && q.Function == AggNone {
		switch st.ResultType {
		case ResultData, ResultText, ResultFlag:
			if ref.RowIndex == nil && ref.CellRow == nil {
				q.Position = PosFirst
			}
		}
	}

	if p.at(WHERE) {
		p.next()
		cond, ok := p.parseDataCondition()
		if !ok {
			p.syncBlock()
			return st
		}
		q.Where = cond
	}

	for p.at(ORDER, LIMIT, OFFSET) {
		switch p.next().Kind {
		case ORDER:
			if _, ok := p.shouldBe(BY); !ok {
				p.syncBlock()
				return st
			}
			for {
				col, ok := p.parseName()
				if !ok {
					p.syncBlock()
					return st
				}
				key := OrderKey{Column: col}
				if dir, ok := p.mightBe(ASC, DESC); ok {
					key.Descending = dir.Kind == DESC
				}
				q.OrderBy = append(q.OrderBy, key)
				if _, ok := p.mightBe(COMMA); !ok {
					break
				}
			}
		case LIMIT:
			if n, ok := p.parseInt(); ok {
				q.Limit = &n
			}
		case OFFSET:
			if n, ok := p.parseInt(); ok {
				q.Offset = &n
			}
		}
	}

	return st

}

// parseTableRef parses Table or Project.Table, optionally suffixed
// [i], [i..j], [i,j], or (col1, col2, ...).
func (p *parser) parseTableRef() (TableRef, bool) {

	var ref TableRef

	name, ok := p.parseName()
	if !ok {
		return ref, false
	}
	ref.Table = name

	if _, ok := p.mightBe(DOT); ok {
		table, ok := p.parseName()
		if !ok {
			return ref, false
		}
		ref.Project = ref.Table
		ref.Table = table
	}

	if _, ok := p.mightBe(LBRACK); ok {
		a, ok := p.parseInt()
		if !ok {
			return ref, false
		}
		switch {
		case p.at(DOT) && p.peekAt(1).Kind == DOT:
			p.next()
			p.next()
			b, ok := p.parseInt()
			if !ok {
				return ref, false
			}
			ref.RangeStart, ref.RangeEnd = &a, &b
		case p.at(COMMA):
			p.next()
			b, ok := p.parseInt()
			if !ok {
				return ref, false
			}
			ref.CellRow, ref.CellCol = &a, &b
		default:
			ref.RowIndex = &a
		}
		if _, ok := p.shouldBe(RBRACK); !ok {
			return ref, false
		}
	}

	if _, ok := p.mightBe(LPAREN); ok {
		for {
			col, ok := p.parseName()
			if !ok {
				return ref, false
			}
			ref.Columns = append(ref.Columns, col)
			if _, ok := p.mightBe(COMMA); !ok {
				break
			}
		}
		if _, ok := p.shouldBe(RPAREN); !ok {
			return ref, false
		}
		if len(ref.Columns) == 1 {
			ref.Column = ref.Columns[0]
		}
	}

	return ref, true

}

// --------------------------------------------------
// WHERE conditions
// --------------------------------------------------

// parseDataCondition parses the full predicate grammar:
// or-of-ands with NOT and parenthesised groups at the leaves.
func (p *parser) parseDataCondition() (DataCondition, bool) {
	return p.parseOrCondition()
}

func (p *parser) parseOrCondition() (DataCondition, bool) {

	left, ok := p.parseAndCondition()
	if !ok {
		return nil, false
	}

	for p.at(OR) {
		p.next()
		right, ok := p.parseAndCondition()
		if !ok {
			return nil, false
		}
		left = &OrCondition{Left: left, Right: right}
	}

	return left, true

}

func (p *parser) parseAndCondition() (DataCondition, bool) {

	left, ok := p.parseNotCondition()
	if !ok {
		return nil, false
	}

	for p.at(AND) {
		p.next()
		right, ok := p.parseNotCondition()
		if !ok {
			return nil, false
		}
		left = &AndCondition{Left: left, Right: right}
	}

	return left, true

}

func (p *parser) parseNotCondition() (DataCondition, bool) {

	if p.at(NOT) {
		p.next()
		inner, ok := p.parsePrimaryCondition()
		if !ok {
			return nil, false
		}
		return &NotCondition{Inner: inner}, true
	}

	return p.parsePrimaryCondition()

}

func (p *parser) parsePrimaryCondition() (DataCondition, bool) {

	if p.at(LPAREN) {
		p.next()
		cond, ok := p.parseDataCondition()
		if !ok {
			return nil, false
		}
		if _, ok := p.shouldBe(RPAREN); !ok {
			return nil, false
		}
		return cond, true
	}

	return p.parseComparison()

}

// parseComparison parses column <operator> value, including the
// keyword operators and the IN list form.
func (p *parser) parseComparison() (DataCondition, bool) {

	col, ok := p.parseName()
	if !ok {
		return nil, false
	}

	cmp := &Comparison{Column: col}

	switch p.peek().Kind {

	case EQ:
		p.next()
		cmp.Operator = OpEq

	case NEQ:
		p.next()
		cmp.Operator = OpNeq

	case GT:
		p.next()
		cmp.Operator = OpGt

	case LT:
		p.next()
		cmp.Operator = OpLt

	case GTE:
		p.next()
		cmp.Operator = OpGte

	case LTE:
		p.next()
		cmp.Operator = OpLte

	case CONTAINS:
		p.next()
		cmp.Operator = OpContains

	case MATCHES:
		p.next()
		cmp.Operator = OpMatches

	case STARTS:
		p.next()
		if _, ok := p.shouldBe(WITH); !ok {
			return nil, false
		}
		cmp.Operator = OpStartsWith

	case ENDS:
		p.next()
		if _, ok := p.shouldBe(WITH); !ok {
			return nil, false
		}
		cmp.Operator = OpEndsWith

	case IN:
		p.next()
		cmp.Operator = OpIn
		return p.parseInList(cmp)

	case NOT:
		p.next()
		switch {
		case p.at(IN):
			p.next()
			cmp.Operator = OpNotIn
			return p.parseInList(cmp)
		case p.at(EQ):
			p.next()
			cmp.Operator = OpNeq
		default:
			p.unexpected(IN, EQ)
			return nil, false
		}

	case IS:
		p.next()
		switch {
		case p.at(NULL):
			p.next()
			cmp.Operator = OpIsNull
			return cmp, true
		case p.at(EMPTY):
			p.next()
			cmp.Operator = OpIsEmpty
			return cmp, true
		case p.at(NOT):
			p.next()
			if _, ok := p.shouldBe(EMPTY); !ok {
				return nil, false
			}
			cmp.Operator = OpIsNotEmpty
			return cmp, true
		default:
			cmp.Operator = OpEq
		}

	default:
		p.unexpected(EQ, NEQ, GT, LT, GTE, LTE, CONTAINS, MATCHES, STARTS, ENDS, IN, IS, NOT)
		return nil, false

	}

	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	cmp.Value = val

	return cmp, true

}

// parseInList parses the bracketed value list of IN and NOT IN.
func (p *parser) parseInList(cmp *Comparison) (DataCondition, bool) {

	if _, ok := p.shouldBe(LBRACK); !ok {
		return nil, false
	}

	for !p.at(RBRACK, EOF) {
		val, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		cmp.Values = append(cmp.Values, val)
		if _, ok := p.mightBe(COMMA); !ok {
			break
		}
	}

	if _, ok := p.shouldBe(RBRACK); !ok {
		return nil, false
	}

	return cmp, true

}
