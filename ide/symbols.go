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

// Symbol kinds follow the editor's document symbol model.
const (
	SymClass    = "Class"
	SymField    = "Field"
	SymMethod   = "Method"
	SymFunction = "Function"
	SymVariable = "Variable"
)

// Symbol is one node of the document symbol tree.
type Symbol struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Range    Range    `json:"range"`
	Children []Symbol `json:"children,omitempty"`
}

// DocumentSymbols builds the outline tree for the document.
func (p *Provider) DocumentSymbols() []Symbol {

	var out []Symbol

	for _, pg := range p.prog.Pages {

		node := Symbol{Name: pg.Name, Kind: SymClass, Range: p.wordRange(pg.Line, pg.Name)}

		for _, f := range pg.Fields {
			node.Children = append(node.Children, Symbol{
				Name: f.Name, Kind: SymField, Range: p.wordRange(f.Line, f.Name),
			})
		}
		for _, v := range pg.Variables {
			node.Children = append(node.Children, Symbol{
				Name: v.Name, Kind: SymVariable, Range: p.wordRange(v.Line, v.Name),
			})
		}
		for _, a := range pg.Actions {
			node.Children = append(node.Children, Symbol{
				Name: a.Name, Kind: SymMethod, Range: p.wordRange(a.Line, a.Name),
			})
		}

		out = append(out, node)

	}

	for _, pa := range p.prog.PageActions {

		node := Symbol{Name: pa.Name, Kind: SymClass, Range: p.wordRange(pa.Line, pa.Name)}

		for _, a := range pa.Actions {
			node.Children = append(node.Children, Symbol{
				Name: a.Name, Kind: SymMethod, Range: p.wordRange(a.Line, a.Name),
			})
		}

		out = append(out, node)

	}

	for _, f := range p.prog.Features {

		node := Symbol{Name: f.Name, Kind: SymClass, Range: p.wordRange(f.Line, f.Name)}

		for _, s := range f.Scenarios {
			node.Children = append(node.Children, Symbol{
				Name: s.Name, Kind: SymFunction, Range: p.wordRange(s.Line, s.Name),
			})
		}

		out = append(out, node)

	}

	return out

}
