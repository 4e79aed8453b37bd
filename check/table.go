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

package check

import (
	"sort"

	"github.com/abcum/vero/vero"
)

// Table is the symbol table built by the validator and shared, read
// only, with the transpiler and the editor providers.
type Table struct {
	Pages              map[string]*vero.Page
	PageActions        map[string]*vero.PageActions
	PageFields         map[string]map[string]bool
	PageActionsActions map[string]map[string]bool
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{
		Pages:              make(map[string]*vero.Page),
		PageActions:        make(map[string]*vero.PageActions),
		PageFields:         make(map[string]map[string]bool),
		PageActionsActions: make(map[string]map[string]bool),
	}
}

// IsPage reports whether name is a declared page.
func (t *Table) IsPage(name string) bool {
	_, ok := t.Pages[name]
	return ok
}

// IsPageActions reports whether name is a declared PageActions block.
func (t *Table) IsPageActions(name string) bool {
	_, ok := t.PageActions[name]
	return ok
}

// IsContainer reports whether name is a page or a PageActions block.
func (t *Table) IsContainer(name string) bool {
	return t.IsPage(name) || t.IsPageActions(name)
}

// HasField reports whether a page declares the field or action.
func (t *Table) HasField(page, field string) bool {
	return t.PageFields[page][field]
}

// ContainerNames returns every page and PageActions name, sorted.
func (t *Table) ContainerNames() []string {
	out := make([]string, 0, len(t.Pages)+len(t.PageActions))
	for n := range t.Pages {
		out = append(out, n)
	}
	for n := range t.PageActions {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// PageNames returns every page name, sorted.
func (t *Table) PageNames() []string {
	out := make([]string, 0, len(t.Pages))
	for n := range t.Pages {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// FieldNames returns a page's field and action names, sorted.
func (t *Table) FieldNames(page string) []string {
	out := make([]string, 0, len(t.PageFields[page]))
	for n := range t.PageFields[page] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ActionNames returns a container's action names, sorted.
func (t *Table) ActionNames(container string) []string {

	if pa, ok := t.PageActions[container]; ok {
		out := make([]string, 0, len(pa.Actions))
		for n := range t.PageActionsActions[container] {
			out = append(out, n)
		}
		sort.Strings(out)
		return out
	}

	if pg, ok := t.Pages[container]; ok {
		out := make([]string, 0, len(pg.Actions))
		for _, a := range pg.Actions {
			out = append(out, a.Name)
		}
		sort.Strings(out)
		return out
	}

	return nil

}

// ActionOf resolves an action declaration on a page or PageActions.
func (t *Table) ActionOf(container, action string) *vero.Action {

	if pa, ok := t.PageActions[container]; ok {
		for _, a := range pa.Actions {
			if a.Name == action {
				return a
			}
		}
		return nil
	}

	if pg, ok := t.Pages[container]; ok {
		for _, a := range pg.Actions {
			if a.Name == action {
				return a
			}
		}
	}

	return nil

}
