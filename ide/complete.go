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

package ide

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abcum/vero/vero"
)

// CompletionItem is one suggestion in the completion popup.
type CompletionItem struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Insert string `json:"insert"`
}

var statementKeywords = []string{
	"click", "fill", "open", "check", "uncheck", "select", "hover",
	"press", "scroll", "wait", "refresh", "clear", "upload", "drag",
	"log", "screenshot", "perform", "return", "variable", "if",
	"repeat", "for each", "try", "load", "row", "rows", "number",
	"api", "verify", "mock api", "switch to new tab", "switch to tab",
	"open in new tab", "close tab",
}

var conditionKeywords = []string{
	"is visible", "is hidden", "is enabled", "is disabled",
	"is checked", "is focused", "is empty", "is not visible",
	"contains", "has text", "has value", "has class", "has count",
	"has attribute", "url contains", "title contains",
}

var selectorKeywords = []string{
	"button", "textbox", "link", "checkbox", "heading", "combobox",
	"radio", "role", "label", "placeholder", "testid", "text", "alt",
	"title", "css", "xpath",
}

// Completion returns items filtered by the context before the cursor.
func (p *Provider) Completion(line int, col int, lineContent string) []CompletionItem {

	before := lineContent
	if col-1 >= 0 && col-1 <= len(lineContent) {
		before = lineContent[:col-1]
	}
	lower := strings.ToLower(strings.TrimLeft(before, " \t"))

	var items []CompletionItem

	switch {

	case strings.HasSuffix(before, "$"):
		for _, v := range p.scopeVariables() {
			items = append(items, CompletionItem{Label: v, Kind: "variable", Insert: v})
		}

	case strings.HasPrefix(lower, "verify "):
		for _, c := range conditionKeywords {
			items = append(items, CompletionItem{Label: c, Kind: "keyword", Insert: c})
		}

	case strings.HasPrefix(lower, "field ") && strings.Contains(lower, "="):
		for _, s := range selectorKeywords {
			items = append(items, CompletionItem{Label: s, Kind: "keyword", Insert: s + " \"\""})
		}

	case strings.HasPrefix(lower, "perform ") || strings.HasPrefix(lower, "do "):
		for container, actions := range p.actionPairs() {
			for _, a := range actions {
				pair := container + "." + a
				items = append(items, CompletionItem{Label: pair, Kind: "method", Insert: pair})
			}
		}

	case lower == "":
		for _, k := range statementKeywords {
			items = append(items, CompletionItem{Label: k, Kind: "keyword", Insert: k})
		}

	default:
		// Mid-statement, offer the known containers.
		for _, n := range p.table.ContainerNames() {
			items = append(items, CompletionItem{Label: n, Kind: "class", Insert: n})
		}

	}

	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Label, items[j].Label) < 0
	})

	return items

}

// actionPairs lists every Container.action pair, keyed by container.
func (p *Provider) actionPairs() map[string][]string {

	out := make(map[string][]string)

	for name := range p.table.Pages {
		if actions := p.table.ActionNames(name); len(actions) > 0 {
			out[name] = actions
		}
	}
	for name := range p.table.PageActions {
		out[name] = p.table.ActionNames(name)
	}

	return out

}

// scopeVariables lists every variable bound anywhere in the document.
func (p *Provider) scopeVariables() []string {

	seen := make(map[string]bool)
	var out []string

	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	walkStatements(p.prog, func(st vero.Statement) {
		switch s := st.(type) {
		case *vero.LoadStatement:
			add(s.Variable)
		case *vero.DataQueryStatement:
			add(s.Variable)
		case *vero.SetStatement:
			add(s.Name)
		case *vero.ForEachStatement:
			add(s.ItemVariable)
		}
	})

	return out

}
