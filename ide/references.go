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

	"github.com/abcum/vero/vero"
)

// Reference is one use site of a symbol, classified by how the
// statement uses it.
type Reference struct {
	Location Location `json:"location"`
	Kind     string   `json:"kind"` // definition, use, do, click, fill, verify, reference
}

// References finds every site referring to a page, field or action
// name.
func (p *Provider) References(word string, includeDeclaration bool) []Reference {

	var out []Reference

	add := func(line int, kind string) {
		out = append(out, Reference{Location: p.loc(line, word), Kind: kind})
	}

	if includeDeclaration {
		if pg, ok := p.table.Pages[word]; ok {
			add(pg.Line, "definition")
		}
		if pa, ok := p.table.PageActions[word]; ok {
			add(pa.Line, "definition")
		}
		for _, pg := range p.prog.Pages {
			for _, f := range pg.Fields {
				if f.Name == word {
					add(f.Line, "definition")
				}
			}
			for _, a := range pg.Actions {
				if a.Name == word {
					add(a.Line, "definition")
				}
			}
		}
	}

	for _, f := range p.prog.Features {
		for _, use := range f.Uses {
			if use.Name == word {
				add(use.Line, "use")
			}
		}
	}

	match := func(t vero.Target, line int, kind string) {
		if t.Page == word || t.Field == word {
			add(line, kind)
		}
	}

	walkStatements(p.prog, func(st vero.Statement) {
		switch s := st.(type) {
		case *vero.ClickStatement:
			match(s.Target, s.Pos(), "click")
		case *vero.FillStatement:
			match(s.Target, s.Pos(), "fill")
		case *vero.CheckStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.UncheckStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.SelectStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.HoverStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.ScrollStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.ClearStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.UploadStatement:
			match(s.Target, s.Pos(), "reference")
		case *vero.DragStatement:
			match(s.Source, s.Pos(), "reference")
			match(s.Dest, s.Pos(), "reference")
		case *vero.PerformStatement:
			if s.Container == word || s.Action == word {
				add(s.Pos(), "do")
			}
		case *vero.VerifyStatement:
			if s.Condition.Target != nil {
				match(*s.Condition.Target, s.Pos(), "verify")
			}
		case *vero.IfStatement:
			if s.Condition.Target != nil {
				match(*s.Condition.Target, s.Pos(), "reference")
			}
		}
	})

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location.Range.StartLine < out[j].Location.Range.StartLine
	})

	return out

}
