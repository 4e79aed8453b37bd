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
	"regexp"
	"strconv"
	"strings"
)

// Predicate filters rows. Predicates carry a stable key so composed
// query plans can be fingerprinted for the result memo.
type Predicate interface {
	Match(Row) bool
	Key() string
}

type cmpPred struct {
	op   string
	col  string
	val  interface{}
	vals []interface{}
}

func (p *cmpPred) Key() string {
	if p.vals != nil {
		return fmt.Sprintf("%s(%s,%v)", p.op, p.col, p.vals)
	}
	return fmt.Sprintf("%s(%s,%v)", p.op, p.col, p.val)
}

func (p *cmpPred) Match(r Row) bool {

	v := r[p.col]

	switch p.op {

	case "eq":
		return looseEq(v, p.val)
	case "neq":
		return !looseEq(v, p.val)
	case "gt":
		return compareValues(v, p.val) > 0
	case "lt":
		return compareValues(v, p.val) < 0
	case "gte":
		return compareValues(v, p.val) >= 0
	case "lte":
		return compareValues(v, p.val) <= 0
	case "contains":
		return strings.Contains(asString(v), asString(p.val))
	case "startsWith":
		return strings.HasPrefix(asString(v), asString(p.val))
	case "endsWith":
		return strings.HasSuffix(asString(v), asString(p.val))
	case "matches":
		re, err := regexp.Compile(asString(p.val))
		if err != nil {
			return false
		}
		return re.MatchString(asString(v))
	case "isIn":
		for _, c := range p.vals {
			if looseEq(v, c) {
				return true
			}
		}
		return false
	case "notIn":
		for _, c := range p.vals {
			if looseEq(v, c) {
				return false
			}
		}
		return true
	case "isNull":
		return v == nil
	case "isEmpty":
		return v == nil || asString(v) == ""
	case "isNotEmpty":
		return v != nil && asString(v) != ""

	}

	return false

}

// Eq matches rows whose column equals the value.
func Eq(col string, v interface{}) Predicate { return &cmpPred{op: "eq", col: col, val: v} }

// Neq matches rows whose column differs from the value.
func Neq(col string, v interface{}) Predicate { return &cmpPred{op: "neq", col: col, val: v} }

// Gt matches rows whose column is greater than the value.
func Gt(col string, v interface{}) Predicate { return &cmpPred{op: "gt", col: col, val: v} }

// Lt matches rows whose column is less than the value.
func Lt(col string, v interface{}) Predicate { return &cmpPred{op: "lt", col: col, val: v} }

// Gte matches rows whose column is at least the value.
func Gte(col string, v interface{}) Predicate { return &cmpPred{op: "gte", col: col, val: v} }

// Lte matches rows whose column is at most the value.
func Lte(col string, v interface{}) Predicate { return &cmpPred{op: "lte", col: col, val: v} }

// Contains matches rows whose column contains the value as text.
func Contains(col string, v interface{}) Predicate {
	return &cmpPred{op: "contains", col: col, val: v}
}

// StartsWith matches rows whose column starts with the value.
func StartsWith(col string, v interface{}) Predicate {
	return &cmpPred{op: "startsWith", col: col, val: v}
}

// EndsWith matches rows whose column ends with the value.
func EndsWith(col string, v interface{}) Predicate {
	return &cmpPred{op: "endsWith", col: col, val: v}
}

// Matches matches rows whose column matches the pattern.
func Matches(col string, pattern string) Predicate {
	return &cmpPred{op: "matches", col: col, val: pattern}
}

// IsIn matches rows whose column equals one of the values.
func IsIn(col string, vals []interface{}) Predicate {
	return &cmpPred{op: "isIn", col: col, vals: vals}
}

// NotIn matches rows whose column equals none of the values.
func NotIn(col string, vals []interface{}) Predicate {
	return &cmpPred{op: "notIn", col: col, vals: vals}
}

// IsNull matches rows whose column is null.
func IsNull(col string) Predicate { return &cmpPred{op: "isNull", col: col} }

// IsEmpty matches rows whose column is null or empty text.
func IsEmpty(col string) Predicate { return &cmpPred{op: "isEmpty", col: col} }

// IsNotEmpty matches rows whose column holds non-empty text.
func IsNotEmpty(col string) Predicate { return &cmpPred{op: "isNotEmpty", col: col} }

type boolPred struct {
	op   string
	args []Predicate
}

func (p *boolPred) Key() string {
	keys := make([]string, len(p.args))
	for i, a := range p.args {
		keys[i] = a.Key()
	}
	return p.op + "(" + strings.Join(keys, ",") + ")"
}

func (p *boolPred) Match(r Row) bool {
	switch p.op {
	case "and":
		return p.args[0].Match(r) && p.args[1].Match(r)
	case "or":
		return p.args[0].Match(r) || p.args[1].Match(r)
	default:
		return !p.args[0].Match(r)
	}
}

// And matches rows both predicates match.
func And(a, b Predicate) Predicate { return &boolPred{op: "and", args: []Predicate{a, b}} }

// Or matches rows either predicate matches.
func Or(a, b Predicate) Predicate { return &boolPred{op: "or", args: []Predicate{a, b}} }

// Not inverts a predicate.
func Not(a Predicate) Predicate { return &boolPred{op: "not", args: []Predicate{a}} }

// --------------------------------------------------
// Value coercion
// --------------------------------------------------

// asString renders a value the way the host language would.
func asString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// asNumber coerces a value like Number(v) || 0.
func asNumber(v interface{}) float64 {
	switch v := v.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// numeric reports whether a value is a number, or text that parses as
// one.
func numeric(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// looseEq compares two values with numeric coercion when both sides
// are numeric, string comparison otherwise.
func looseEq(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			return an == bn
		}
	}
	return asString(a) == asString(b)
}

// compareValues orders two values: nulls sort before any value,
// numbers compare numerically, everything else compares as text.
func compareValues(a, b interface{}) int {

	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}

	as, bs := asString(a), asString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}

}
