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

package diag

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Range is a character span on a single line, columns 1-based and the
// end column exclusive.
type Range struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// TextEdit is a structured replacement applied by the editor.
type TextEdit struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// CodeAction is a quick fix offered for a marker.
type CodeAction struct {
	Title string     `json:"title"`
	Kind  string     `json:"kind"`
	Edits []TextEdit `json:"edits"`
}

// FixContext is the editor state a quick fix is computed against.
type FixContext struct {
	Path         string
	LineContent  string
	DefinedPages []string
}

// typos maps common keyword misspellings to their corrections. The
// table is static; lookups are case-insensitive on the misspelling.
var typos = map[string]string{
	"naivgate":   "navigate",
	"navigat":    "navigate",
	"clik":       "click",
	"cick":       "click",
	"clck":       "click",
	"fil":        "fill",
	"fll":        "fill",
	"verfiy":     "verify",
	"verifiy":    "verify",
	"veriy":      "verify",
	"verfy":      "verify",
	"feture":     "feature",
	"feautre":    "feature",
	"faeture":    "feature",
	"scneario":   "scenario",
	"scenairo":   "scenario",
	"senario":    "scenario",
	"scenaro":    "scenario",
	"pgae":       "page",
	"pge":        "page",
	"filed":      "field",
	"feild":      "field",
	"buton":      "button",
	"buttom":     "button",
	"textbx":     "textbox",
	"textobx":    "textbox",
	"chekc":      "check",
	"chck":       "check",
	"unchek":     "uncheck",
	"hver":       "hover",
	"hovr":       "hover",
	"scrol":      "scroll",
	"waitt":      "wait",
	"wiat":       "wait",
	"perfrom":    "perform",
	"peform":     "perform",
	"refersh":    "refresh",
	"refrsh":     "refresh",
	"uplod":      "upload",
	"screenshoot": "screenshot",
	"screnshot":  "screenshot",
	"visble":     "visible",
	"visibel":    "visible",
	"hiden":      "hidden",
	"enbled":     "enabled",
	"disbled":    "disabled",
	"contians":   "contains",
	"containz":   "contains",
	"slect":      "select",
	"seelct":     "select",
	"repaet":     "repeat",
	"repeet":     "repeat",
}

// Fixes computes the quick fixes available for a marker. The returned
// slice is empty when no structured fix applies.
func Fixes(m Marker, ctx FixContext) []CodeAction {

	var out []CodeAction

	switch m.Code {

	case "VERO-301", "VERO-304":
		for _, p := range ctx.DefinedPages {
			out = append(out, CodeAction{
				Title: fmt.Sprintf("Insert 'use %s'", p),
				Kind:  "quickfix",
				Edits: []TextEdit{{
					Range: Range{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 1},
					Text:  fmt.Sprintf("  use %s\n", p),
				}},
			})
		}

	case "VERO-203", "VERO-204":
		name := wordAt(ctx.LineContent, m.StartCol)
		if name != "" {
			out = append(out, CodeAction{
				Title: fmt.Sprintf("Insert 'load %s from \"table_name\"'", name),
				Kind:  "quickfix",
				Edits: []TextEdit{{
					Range: Range{StartLine: m.StartLine, StartCol: 1, EndLine: m.StartLine, EndCol: 1},
					Text:  fmt.Sprintf("load %s from \"table_name\"\n", name),
				}},
			})
		}

	case "VERO-310":
		name := wordAt(ctx.LineContent, m.StartCol)
		if name != "" {
			if fixed := pascal(name); fixed != name {
				out = append(out, renameAction(m, name, fixed))
			}
			if fixed := camel(name); fixed != name && fixed != pascal(name) {
				out = append(out, renameAction(m, name, fixed))
			}
		}

	case "VERO-201":
		out = append(out, CodeAction{
			Title: "Insert closing }",
			Kind:  "quickfix",
			Edits: []TextEdit{{
				Range: Range{StartLine: m.StartLine + 1, StartCol: 1, EndLine: m.StartLine + 1, EndCol: 1},
				Text:  "}\n",
			}},
		})
	}

	// Keyword typo fixes apply regardless of code, driven by the line.
	if fix, ok := typoFix(m, ctx.LineContent); ok {
		out = append(out, fix)
	}

	return out

}

// typoFix scans the marker's line for a known keyword misspelling and
// produces the minimal edit that rewrites the line with the correction.
func typoFix(m Marker, line string) (CodeAction, bool) {

	lower := strings.ToLower(line)

	for bad, good := range typos {
		idx := indexWord(lower, bad)
		if idx < 0 {
			continue
		}

		fixed := line[:idx] + matchCase(line[idx:idx+len(bad)], good) + line[idx+len(bad):]

		return CodeAction{
			Title: fmt.Sprintf("Replace '%s' with '%s'", line[idx:idx+len(bad)], matchCase(line[idx:idx+len(bad)], good)),
			Kind:  "quickfix",
			Edits: []TextEdit{minimalLineEdit(m.StartLine, line, fixed)},
		}, true
	}

	return CodeAction{}, false

}

// minimalLineEdit computes the smallest single edit that turns have
// into want on the given line, trimming the unchanged prefix and
// suffix with a character diff.
func minimalLineEdit(line int, have, want string) TextEdit {

	dmp := diffmatchpatch.New()
	prefix := dmp.DiffCommonPrefix(have, want)
	suffix := dmp.DiffCommonSuffix(have[prefix:], want[prefix:])

	return TextEdit{
		Range: Range{
			StartLine: line,
			StartCol:  prefix + 1,
			EndLine:   line,
			EndCol:    len(have) - suffix + 1,
		},
		Text: want[prefix : len(want)-suffix],
	}

}

func renameAction(m Marker, from, to string) CodeAction {
	return CodeAction{
		Title: fmt.Sprintf("Rename '%s' to '%s'", from, to),
		Kind:  "quickfix",
		Edits: []TextEdit{{
			Range: Range{StartLine: m.StartLine, StartCol: m.StartCol, EndLine: m.StartLine, EndCol: m.StartCol + len(from)},
			Text:  to,
		}},
	}
}

// indexWord finds needle in hay at a word boundary, or -1.
func indexWord(hay, needle string) int {
	from := 0
	for {
		idx := strings.Index(hay[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from
		beforeOK := idx == 0 || !isWordChar(hay[idx-1])
		after := idx + len(needle)
		afterOK := after >= len(hay) || !isWordChar(hay[after])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// wordAt returns the identifier found at the 1-based column of line.
func wordAt(line string, col int) string {
	if col < 1 || col > len(line) {
		return ""
	}
	beg := col - 1
	for beg > 0 && isWordChar(line[beg-1]) {
		beg--
	}
	end := col - 1
	for end < len(line) && isWordChar(line[end]) {
		end++
	}
	return line[beg:end]
}

// matchCase shapes the replacement word like the misspelling: all-caps
// stays all-caps, a capitalised word stays capitalised.
func matchCase(sample, word string) string {
	if sample == strings.ToUpper(sample) {
		return strings.ToUpper(word)
	}
	if len(sample) > 0 && sample[0] >= 'A' && sample[0] <= 'Z' {
		return strings.ToUpper(word[:1]) + word[1:]
	}
	return word
}

func pascal(name string) string {
	c := camel(name)
	if c == "" {
		return c
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

func camel(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(strings.ToLower(p[:1]) + p[1:])
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
