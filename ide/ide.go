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

// Package ide exposes the editor-facing readers over the AST and the
// symbol table: hover, definition, references, symbols, folding,
// completion and code actions. Providers emit no code.
package ide

import (
	"strings"

	"github.com/abcum/vero/check"
	"github.com/abcum/vero/diag"
	"github.com/abcum/vero/vero"
)

// Range is a span in a document, 1-based, end column exclusive.
type Range struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// Location is a range in a named document.
type Location struct {
	Path  string `json:"path"`
	Range Range  `json:"range"`
}

// Provider answers editor queries for one document.
type Provider struct {
	path  string
	lines []string
	prog  *vero.Program
	table *check.Table
}

// NewProvider wraps an analysed document. The program and table are
// borrowed from the compilation unit that built them.
func NewProvider(path, source string, prog *vero.Program, table *check.Table) *Provider {
	return &Provider{
		path:  path,
		lines: strings.Split(source, "\n"),
		prog:  prog,
		table: table,
	}
}

// lineAt returns the 1-based line's content.
func (p *Provider) lineAt(line int) string {
	if line < 1 || line > len(p.lines) {
		return ""
	}
	return p.lines[line-1]
}

// wordRange finds the range of the first occurrence of word on a
// line.
func (p *Provider) wordRange(line int, word string) Range {
	content := p.lineAt(line)
	idx := strings.Index(content, word)
	if idx < 0 {
		return Range{StartLine: line, StartCol: 1, EndLine: line, EndCol: 1}
	}
	return Range{StartLine: line, StartCol: idx + 1, EndLine: line, EndCol: idx + 1 + len(word)}
}

// CodeActions returns the quick fixes for a marker in this document.
func (p *Provider) CodeActions(m diag.Marker) []diag.CodeAction {
	return diag.Fixes(m, diag.FixContext{
		Path:         p.path,
		LineContent:  p.lineAt(m.StartLine),
		DefinedPages: p.table.PageNames(),
	})
}
