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
	"fmt"
	"strings"
)

// Hover is tooltip content for a word.
type Hover struct {
	HTML  string `json:"html"`
	Range Range  `json:"range"`
}

// keywordDocs is the fixed hover documentation table.
var keywordDocs = map[string]string{
	"page":        "Declares a page: a named collection of fields and actions for one UI surface.",
	"pageactions": "Declares a secondary action container for a page declared elsewhere.",
	"feature":     "Declares a feature: a named collection of scenarios sharing a USE list.",
	"scenario":    "Declares a single test case.",
	"field":       "Binds a name to an element selector on the page.",
	"variable":    "Binds a named value.",
	"use":         "Makes a page or PAGEACTIONS block available to the feature.",
	"before":      "Starts a BEFORE ALL or BEFORE EACH lifecycle hook.",
	"after":       "Starts an AFTER ALL or AFTER EACH lifecycle hook.",
	"fixture":     "Declares a named setup/teardown pair run around each scenario.",
	"click":       "Clicks the target element.",
	"fill":        "Types a value into the target element.",
	"open":        "Navigates to a URL.",
	"check":       "Checks the target checkbox.",
	"uncheck":     "Unchecks the target checkbox.",
	"select":      "Selects an option from the target combobox.",
	"hover":       "Hovers the target element.",
	"press":       "Presses a keyboard key.",
	"scroll":      "Scrolls the target element into view.",
	"wait":        "Pauses for a duration in seconds or milliseconds.",
	"refresh":     "Reloads the page.",
	"clear":       "Clears the target input.",
	"upload":      "Sets a file on the target input.",
	"drag":        "Drags one element onto another.",
	"perform":     "Calls a reusable action on a page.",
	"verify":      "Asserts a condition on an element, the page, a response, or a screenshot.",
	"log":         "Writes a value to the console.",
	"screenshot":  "Captures a named screenshot.",
	"if":          "Runs a branch when a condition holds.",
	"repeat":      "Runs its body a fixed number of times.",
	"for":         "Iterates a bound collection with FOR EACH.",
	"try":         "Runs statements, diverting failures to the CATCH block.",
	"load":        "Loads a data table into a list variable.",
	"row":         "Binds one row selected from a data table.",
	"rows":        "Binds a filtered list of rows from a data table.",
	"number":      "Binds an aggregated number computed from a data table.",
	"api":         "Performs an HTTP request through the test fixture.",
	"mock":        "Stubs an API endpoint with a fixed response.",
	"switch":      "Switches the active browser tab.",
	"close":       "Closes the active browser tab.",
}

// Hover yields keyword documentation, or symbol details when the word
// names a page, action, or field.
func (p *Provider) Hover(line int, word, lineContent string) *Hover {

	rng := p.wordRange(line, word)

	if doc, ok := keywordDocs[strings.ToLower(word)]; ok {
		return &Hover{
			HTML:  fmt.Sprintf("<b>%s</b><p>%s</p>", strings.ToUpper(word), doc),
			Range: rng,
		}
	}

	if pg, ok := p.table.Pages[word]; ok {
		return &Hover{
			HTML: fmt.Sprintf("<b>page %s</b><p>%d field(s), %d action(s)</p>",
				pg.Name, len(pg.Fields), len(pg.Actions)),
			Range: rng,
		}
	}

	if pa, ok := p.table.PageActions[word]; ok {
		return &Hover{
			HTML: fmt.Sprintf("<b>pageactions %s</b><p>for %s, %d action(s)</p>",
				pa.Name, pa.ForPage, len(pa.Actions)),
			Range: rng,
		}
	}

	// Page.field and Page.action hovers resolve through the line
	// content, since the word alone is ambiguous.
	if page, ok := containerBefore(lineContent, word); ok {
		if pg, exists := p.table.Pages[page]; exists {
			for _, f := range pg.Fields {
				if f.Name == word {
					return &Hover{
						HTML: fmt.Sprintf("<b>%s.%s</b><p>%s \"%s\"</p>",
							page, word, f.Selector.Kind, f.Selector.Arg),
						Range: rng,
					}
				}
			}
		}
		if act := p.table.ActionOf(page, word); act != nil {
			return &Hover{
				HTML: fmt.Sprintf("<b>%s.%s(%s)</b><p>reusable action</p>",
					page, word, strings.Join(act.Parameters, ", ")),
				Range: rng,
			}
		}
	}

	return nil

}

// containerBefore extracts the identifier before ".word" on a line.
func containerBefore(line, word string) (string, bool) {

	idx := strings.Index(line, "."+word)
	if idx <= 0 {
		return "", false
	}

	end := idx
	beg := end
	for beg > 0 && isIdent(line[beg-1]) {
		beg--
	}

	if beg == end {
		return "", false
	}

	return line[beg:end], true

}

func isIdent(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
