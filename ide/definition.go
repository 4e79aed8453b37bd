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
	"strings"

	"github.com/abcum/vero/vero"
)

// Definition resolves a word to its declaration sites: pages,
// PAGEACTIONS blocks, Page.field, Page.action, USE references and
// data variables.
func (p *Provider) Definition(line int, word, lineContent string) []Location {

	// use X resolves the container.
	trimmed := strings.TrimSpace(strings.ToLower(lineContent))
	if strings.HasPrefix(trimmed, "use ") {
		return p.containerDef(word)
	}

	// Page.member resolves the field or action on its page.
	if page, ok := containerBefore(lineContent, word); ok {
		if pg, exists := p.table.Pages[page]; exists {
			for _, f := range pg.Fields {
				if f.Name == word {
					return []Location{p.loc(f.Line, word)}
				}
			}
		}
		if act := p.table.ActionOf(page, word); act != nil {
			return []Location{p.loc(act.Line, word)}
		}
	}

	if locs := p.containerDef(word); len(locs) > 0 {
		return locs
	}

	// A bare word may be a data variable bound earlier in the file.
	if loc, ok := p.variableDef(word); ok {
		return []Location{loc}
	}

	return nil

}

func (p *Provider) containerDef(word string) []Location {
	if pg, ok := p.table.Pages[word]; ok {
		return []Location{p.loc(pg.Line, word)}
	}
	if pa, ok := p.table.PageActions[word]; ok {
		return []Location{p.loc(pa.Line, word)}
	}
	return nil
}

// variableDef finds the first statement binding the variable.
func (p *Provider) variableDef(word string) (Location, bool) {

	var found *int

	walkStatements(p.prog, func(st vero.Statement) {
		if found != nil {
			return
		}
		switch s := st.(type) {
		case *vero.LoadStatement:
			if s.Variable == word {
				l := s.Pos()
				found = &l
			}
		case *vero.DataQueryStatement:
			if s.Variable == word {
				l := s.Pos()
				found = &l
			}
		case *vero.SetStatement:
			if s.Name == word {
				l := s.Pos()
				found = &l
			}
		case *vero.ForEachStatement:
			if s.ItemVariable == word {
				l := s.Pos()
				found = &l
			}
		}
	})

	if found == nil {
		return Location{}, false
	}

	return p.loc(*found, word), true

}

func (p *Provider) loc(line int, word string) Location {
	return Location{Path: p.path, Range: p.wordRange(line, word)}
}

// walkStatements visits every statement in the program, including
// nested bodies.
func walkStatements(prog *vero.Program, fn func(vero.Statement)) {

	var visit func([]vero.Statement)
	visit = func(list []vero.Statement) {
		for _, st := range list {
			fn(st)
			switch s := st.(type) {
			case *vero.IfStatement:
				visit(s.Then)
				visit(s.Else)
			case *vero.RepeatStatement:
				visit(s.Statements)
			case *vero.ForEachStatement:
				visit(s.Statements)
			case *vero.TryCatchStatement:
				visit(s.Try)
				visit(s.Catch)
			}
		}
	}

	for _, pg := range prog.Pages {
		for _, a := range pg.Actions {
			visit(a.Statements)
		}
	}
	for _, pa := range prog.PageActions {
		for _, a := range pa.Actions {
			visit(a.Statements)
		}
	}
	for _, f := range prog.Features {
		for _, h := range f.Hooks {
			visit(h.Statements)
		}
		for _, fx := range f.Fixtures {
			visit(fx.Setup)
			visit(fx.Teardown)
		}
		for _, s := range f.Scenarios {
			visit(s.Statements)
		}
	}

}
