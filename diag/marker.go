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

import "strings"

// Marker is the editor-surface shape of a diagnostic. Severity values
// follow the editor's marker model: hint=1, info=2, warning=4, error=8.
type Marker struct {
	Severity  int    `json:"severity"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Source    string `json:"source"`
}

var markerSeverities = map[Severity]int{
	SeverityHint:    1,
	SeverityInfo:    2,
	SeverityWarning: 4,
	SeverityError:   8,
}

// ToMarker adapts a diagnostic to the editor marker shape. The message
// concatenates the three-part explanation with blank lines and bullets
// the suggestions.
func ToMarker(d *Diagnostic) Marker {

	startLine := d.Location.Line
	startCol := d.Location.Column
	if startCol == 0 {
		startCol = 1
	}

	endLine := d.Location.EndLine
	if endLine == 0 {
		endLine = startLine
	}
	endCol := d.Location.EndColumn
	if endCol == 0 {
		endCol = startCol + 1
	}

	var b strings.Builder
	b.WriteString(d.Title)
	b.WriteString("\n\n")
	b.WriteString(d.WhatWentWrong)
	b.WriteString("\n\n")
	b.WriteString(d.HowToFix)
	for _, s := range d.Suggestions {
		b.WriteString("\n• ")
		b.WriteString(s.Text)
	}

	return Marker{
		Severity:  markerSeverities[d.Severity],
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
		Message:   b.String(),
		Code:      d.Code,
		Source:    "vero",
	}

}

// ToMarkers adapts a batch of diagnostics.
func ToMarkers(ds []Diagnostic) []Marker {
	out := make([]Marker, 0, len(ds))
	for i := range ds {
		out = append(out, ToMarker(&ds[i]))
	}
	return out
}
