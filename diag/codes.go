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

import "fmt"

// entry is one row of the fixed diagnostic catalog. Codes are grouped
// in ranges: 100-199 lexer, 200-299 parser, 300-399 validation,
// 400-499 locator, 500-599 assertion, 600-699 navigation, 700-799
// interaction, 800-899 browser, 900-999 network.
type entry struct {
	Category  Category
	Severity  Severity
	Title     string
	HowToFix  string
	Flakiness Flakiness
	Retryable bool
	Retries   int
}

var catalog = map[string]entry{

	"VERO-000": {CategoryScript, SeverityError, "Internal compiler error", "Report this as a bug with the source that triggered it", FlakinessPermanent, false, 0},

	// lexer

	"VERO-100": {CategoryLexer, SeverityError, "Unexpected character", "Remove the character or replace it with valid Vero syntax", FlakinessPermanent, false, 0},
	"VERO-101": {CategoryLexer, SeverityError, "Unterminated string", "Add a closing quote at the end of the string", FlakinessPermanent, false, 0},
	"VERO-102": {CategoryLexer, SeverityError, "Malformed number", "Write the number with a single decimal point", FlakinessPermanent, false, 0},
	"VERO-103": {CategoryLexer, SeverityError, "Unterminated environment reference", "Close the reference with }}", FlakinessPermanent, false, 0},

	// parser

	"VERO-200": {CategoryParser, SeverityError, "Unexpected token", "Check the statement syntax at this position", FlakinessPermanent, false, 0},
	"VERO-201": {CategoryParser, SeverityError, "Unterminated block", "Add a closing } for this block", FlakinessPermanent, false, 0},
	"VERO-202": {CategoryParser, SeverityError, "Expected an expression", "Provide a value, a variable, or a transform here", FlakinessPermanent, false, 0},
	"VERO-203": {CategoryParser, SeverityError, "Unknown variable", "Bind the variable with LOAD, ROW or ROWS before using it", FlakinessPermanent, false, 0},
	"VERO-204": {CategoryParser, SeverityError, "Unknown data variable", "Bind the variable with LOAD before iterating it", FlakinessPermanent, false, 0},
	"VERO-210": {CategoryParser, SeverityError, "Invalid tab statement", "Use one of: SWITCH TO NEW TAB, SWITCH TO NEW TAB \"url\", SWITCH TO TAB n, OPEN \"url\" IN NEW TAB, CLOSE TAB", FlakinessPermanent, false, 0},

	// validation

	"VERO-301": {CategoryValidation, SeverityError, "Unknown page in USE", "Declare the page, or fix the name in the USE statement", FlakinessPermanent, false, 0},
	"VERO-302": {CategoryValidation, SeverityError, "Unknown field", "Declare the field on the page, or fix the field name", FlakinessPermanent, false, 0},
	"VERO-303": {CategoryValidation, SeverityError, "Duplicate declaration", "Rename or remove one of the duplicate declarations", FlakinessPermanent, false, 0},
	"VERO-304": {CategoryValidation, SeverityError, "Page not in USE list", "Add a USE statement for the page at the top of the feature", FlakinessPermanent, false, 0},
	"VERO-305": {CategoryValidation, SeverityError, "Unknown action", "Declare the action on the page, or fix the action name", FlakinessPermanent, false, 0},
	"VERO-306": {CategoryValidation, SeverityError, "Wrong number of arguments", "Pass exactly the parameters the action declares", FlakinessPermanent, false, 0},
	"VERO-310": {CategoryValidation, SeverityWarning, "Naming convention", "Rename to follow the project naming conventions", FlakinessPermanent, false, 0},
	"VERO-320": {CategoryValidation, SeverityError, "Tab operation not allowed in this context", "Move the tab operation into a scenario body", FlakinessPermanent, false, 0},
	"VERO-321": {CategoryValidation, SeverityError, "Unknown page in PAGEACTIONS", "Declare the page the PAGEACTIONS block is for", FlakinessPermanent, false, 0},

	// locator (runtime schema)

	"VERO-401": {CategoryLocator, SeverityError, "Element not found", "Check the selector, and that the element is rendered before the step runs", FlakinessFlaky, true, 2},
	"VERO-402": {CategoryLocator, SeverityError, "Selector matched multiple elements", "Make the selector more specific so it matches exactly one element", FlakinessPermanent, false, 0},
	"VERO-403": {CategoryLocator, SeverityError, "Element detached from the page", "Re-query the element after the page updates", FlakinessFlaky, true, 2},

	// assertion (runtime schema)

	"VERO-501": {CategoryAssertion, SeverityError, "Assertion failed", "Compare the expected and actual values and update the test or the app", FlakinessPermanent, false, 0},
	"VERO-502": {CategoryAssertion, SeverityError, "Screenshot comparison failed", "Review the visual diff, and update the baseline if the change is intended", FlakinessPermanent, false, 0},

	// navigation (runtime schema)

	"VERO-601": {CategoryNavigation, SeverityError, "Navigation timed out", "Check that the URL is reachable and the page finishes loading", FlakinessFlaky, true, 3},
	"VERO-602": {CategoryNavigation, SeverityError, "DNS lookup failed", "Check the hostname and your network connection", FlakinessFlaky, true, 2},
	"VERO-603": {CategoryNavigation, SeverityError, "TLS certificate error", "Fix the certificate on the server, or trust it in the test environment", FlakinessPermanent, false, 0},
	"VERO-604": {CategoryNavigation, SeverityError, "HTTP error response", "Check the server logs for the failing URL", FlakinessUnknown, true, 1},
	"VERO-605": {CategoryNavigation, SeverityError, "Network is offline", "Restore network connectivity before re-running", FlakinessFlaky, true, 2},

	// interaction (runtime schema)

	"VERO-701": {CategoryInteraction, SeverityError, "Element is disabled", "Wait for the element to become enabled, or fix the app state", FlakinessFlaky, true, 2},
	"VERO-702": {CategoryInteraction, SeverityError, "Element is obscured", "Close the overlapping element, or scroll the target into view", FlakinessFlaky, true, 2},
	"VERO-703": {CategoryInteraction, SeverityError, "Page navigated during interaction", "Wait for navigation to settle before interacting", FlakinessFlaky, true, 2},

	// browser (runtime schema)

	"VERO-801": {CategoryBrowser, SeverityError, "Browser crashed", "Re-run the test; report the crash if it repeats", FlakinessFlaky, true, 1},
	"VERO-802": {CategoryBrowser, SeverityError, "Browser not installed", "Install the browser binaries for this project", FlakinessPermanent, false, 0},
	"VERO-803": {CategoryBrowser, SeverityError, "Browser context closed", "Do not close the context while steps are still running", FlakinessPermanent, false, 0},
	"VERO-804": {CategoryBrowser, SeverityError, "Page closed", "Do not close the page while steps are still running", FlakinessPermanent, false, 0},
	"VERO-805": {CategoryBrowser, SeverityError, "Frame detached", "Re-acquire the frame after the page updates", FlakinessFlaky, true, 1},
	"VERO-806": {CategoryBrowser, SeverityError, "Expected popup did not open", "Check that the action actually opens a new tab or window", FlakinessFlaky, true, 1},

	// network (runtime schema)

	"VERO-901": {CategoryNetwork, SeverityError, "Request blocked by CORS", "Fix the CORS headers on the server", FlakinessPermanent, false, 0},
	"VERO-902": {CategoryNetwork, SeverityError, "Request failed", "Check the endpoint and the request payload", FlakinessUnknown, true, 1},
	"VERO-903": {CategoryNetwork, SeverityError, "WebSocket error", "Check the socket endpoint and the connection lifecycle", FlakinessFlaky, true, 2},
	"VERO-904": {CategoryNetwork, SeverityError, "Request timed out", "Increase the timeout, or check why the server is slow", FlakinessFlaky, true, 2},
}

// New builds a diagnostic from the catalog entry for code, located at
// loc. Unknown codes produce a VERO-000 internal error diagnostic.
func New(code string, loc Location) *Diagnostic {

	e, ok := catalog[code]
	if !ok {
		e = catalog["VERO-000"]
		return &Diagnostic{
			Code:          "VERO-000",
			Category:      e.Category,
			Severity:      e.Severity,
			Location:      loc,
			Title:         e.Title,
			WhatWentWrong: fmt.Sprintf("No catalog entry exists for diagnostic code '%s'", code),
			HowToFix:      e.HowToFix,
			Flakiness:     e.Flakiness,
		}
	}

	return &Diagnostic{
		Code:             code,
		Category:         e.Category,
		Severity:         e.Severity,
		Location:         loc,
		Title:            e.Title,
		WhatWentWrong:    e.Title,
		HowToFix:         e.HowToFix,
		Flakiness:        e.Flakiness,
		Retryable:        e.Retryable,
		SuggestedRetries: e.Retries,
	}

}

// Internal builds the VERO-000 diagnostic for a should-not-happen
// failure, carrying the technical detail behind a disclosure.
func Internal(loc Location, technical string) *Diagnostic {
	d := New("VERO-000", loc)
	d.WhatWentWrong = "The compiler hit an internal invariant violation"
	d.TechnicalMessage = technical
	return d
}

// Lookup exposes the catalog severity and category for a code, for
// tools that need to classify markers without building a diagnostic.
func Lookup(code string) (Category, Severity, bool) {
	e, ok := catalog[code]
	return e.Category, e.Severity, ok
}
