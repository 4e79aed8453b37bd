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
)

// Category groups diagnostics by the phase or runtime concern
// which produced them.
type Category string

const (
	CategoryLexer       Category = "lexer"
	CategoryParser      Category = "parser"
	CategoryValidation  Category = "validation"
	CategoryLocator     Category = "locator"
	CategoryTimeout     Category = "timeout"
	CategoryNavigation  Category = "navigation"
	CategoryAssertion   Category = "assertion"
	CategoryBrowser     Category = "browser"
	CategoryNetwork     Category = "network"
	CategoryInteraction Category = "interaction"
	CategoryScript      Category = "script"
	CategoryFrame       Category = "frame"
	CategoryResource    Category = "resource"
	CategoryArtifact    Category = "artifact"
)

// Severity ranks how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Flakiness records whether a failure is expected to reproduce.
type Flakiness string

const (
	FlakinessPermanent Flakiness = "permanent"
	FlakinessFlaky     Flakiness = "flaky"
	FlakinessUnknown   Flakiness = "unknown"
)

// Location is a 1-based position span in a source file. Column,
// EndLine and EndColumn are optional and zero when unset.
type Location struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Suggestion is a single actionable hint attached to a diagnostic.
type Suggestion struct {
	Text   string
	Action string // fix, retry, investigate
}

// Context carries the source fragment a diagnostic relates to.
type Context struct {
	VeroStatement string
	Selector      string
	Expected      string
	Actual        string
}

// Diagnostic is the uniform user-facing error value shared by every
// compiler phase and by the schema the generated program reports with.
type Diagnostic struct {
	Code             string
	Category         Category
	Severity         Severity
	Location         Location
	Title            string
	WhatWentWrong    string
	HowToFix         string
	TechnicalMessage string
	Flakiness        Flakiness
	Retryable        bool
	SuggestedRetries int
	Suggestions      []Suggestion
	Context          *Context
}

// IsError reports whether the diagnostic should fail a compilation.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// Render formats the diagnostic in the three-part shape shown to users.
func (d *Diagnostic) Render() string {

	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s\n", d.Code, d.Title)
	fmt.Fprintf(&b, "What went wrong: %s\n", d.WhatWentWrong)
	fmt.Fprintf(&b, "How to fix: %s", d.HowToFix)

	for _, s := range d.Suggestions {
		fmt.Fprintf(&b, "\n  • %s", s.Text)
	}

	return b.String()

}

// Suggest appends a fix suggestion and returns the diagnostic.
func (d *Diagnostic) Suggest(text string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, Suggestion{Text: text, Action: "fix"})
	return d
}

// Detail sets the what-went-wrong text and returns the diagnostic.
func (d *Diagnostic) Detail(format string, args ...interface{}) *Diagnostic {
	d.WhatWentWrong = fmt.Sprintf(format, args...)
	return d
}

// Fix overrides the catalog how-to-fix text and returns the diagnostic.
func (d *Diagnostic) Fix(format string, args ...interface{}) *Diagnostic {
	d.HowToFix = fmt.Sprintf(format, args...)
	return d
}

// At sets the end of the location span and returns the diagnostic.
func (d *Diagnostic) At(endLine, endCol int) *Diagnostic {
	d.Location.EndLine = endLine
	d.Location.EndColumn = endCol
	return d
}

// WithContext attaches source context and returns the diagnostic.
func (d *Diagnostic) WithContext(c Context) *Diagnostic {
	d.Context = &c
	return d
}

// Sink accumulates the diagnostics of a single compilation unit. It is
// owned by the unit and passed by reference into each phase.
type Sink struct {
	items []Diagnostic
}

// NewSink returns an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Push appends a diagnostic to the sink.
func (s *Sink) Push(d *Diagnostic) {
	if d != nil {
		s.items = append(s.items, *d)
	}
}

// Append copies a batch of diagnostics into the sink.
func (s *Sink) Append(ds []Diagnostic) {
	s.items = append(s.items, ds...)
}

// All returns every accumulated diagnostic in emission order.
func (s *Sink) All() []Diagnostic {
	return s.items
}

// HasErrors reports whether any accumulated diagnostic is an error.
func (s *Sink) HasErrors() bool {
	for i := range s.items {
		if s.items[i].IsError() {
			return true
		}
	}
	return false
}

// Count returns the number of accumulated diagnostics.
func (s *Sink) Count() int {
	return len(s.items)
}
