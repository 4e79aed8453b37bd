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

package gen

import (
	"fmt"
	"strings"
)

// writer builds generated source with indentation tracking.
type writer struct {
	b      strings.Builder
	indent int
}

func (w *writer) in()  { w.indent++ }
func (w *writer) out() { w.indent-- }

// line writes one indented line.
func (w *writer) line(format string, args ...interface{}) {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("  ")
	}
	if len(args) == 0 {
		w.b.WriteString(format)
	} else {
		fmt.Fprintf(&w.b, format, args...)
	}
	w.b.WriteByte('\n')
}

// blank writes an empty line.
func (w *writer) blank() {
	w.b.WriteByte('\n')
}

func (w *writer) String() string {
	return w.b.String()
}

// tsString renders a double-quoted TypeScript string literal.
func tsString(s string) string {
	return `"` + tsEscape(s, '"') + `"`
}

// tsSingle renders a single-quoted TypeScript string literal, the
// form used inside data query chains.
func tsSingle(s string) string {
	return `'` + tsEscape(s, '\'') + `'`
}

func tsEscape(s string, quote byte) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// camel lowercases the first rune of a name, giving the binding name
// of a page object.
func camel(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
