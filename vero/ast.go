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

package vero

// --------------------------------------------------
// Program
// --------------------------------------------------

// Program is the root of a parsed compilation unit, the union of all
// top-level declarations in source order.
type Program struct {
	Pages       []*Page
	PageActions []*PageActions
	Features    []*Feature
}

// --------------------------------------------------
// Pages
// --------------------------------------------------

// Page is a named collection of selector fields, variables and
// reusable actions abstracting one UI surface.
type Page struct {
	Name      string
	URL       string
	Fields    []*Field
	Variables []*Variable
	Actions   []*Action
	Line      int
}

// Field binds a name to a selector on its page.
type Field struct {
	Name     string
	Selector Selector
	Line     int
}

// SelectorKind enumerates the sixteen supported selector shapes.
type SelectorKind int

const (
	SelButton SelectorKind = iota
	SelTextbox
	SelLink
	SelCheckbox
	SelHeading
	SelCombobox
	SelRadio
	SelRole
	SelLabel
	SelPlaceholder
	SelTestID
	SelText
	SelAlt
	SelTitle
	SelCSS
	SelXPath
)

var selectorNames = [...]string{
	SelButton:      "BUTTON",
	SelTextbox:     "TEXTBOX",
	SelLink:        "LINK",
	SelCheckbox:    "CHECKBOX",
	SelHeading:     "HEADING",
	SelCombobox:    "COMBOBOX",
	SelRadio:       "RADIO",
	SelRole:        "ROLE",
	SelLabel:       "LABEL",
	SelPlaceholder: "PLACEHOLDER",
	SelTestID:      "TESTID",
	SelText:        "TEXT",
	SelAlt:         "ALT",
	SelTitle:       "TITLE",
	SelCSS:         "CSS",
	SelXPath:       "XPATH",
}

func (k SelectorKind) String() string {
	return selectorNames[k]
}

// Selector is a tagged selector literal with its string argument.
type Selector struct {
	Kind SelectorKind
	Arg  string
}

// Variable is a named expression binding on a page or in a scenario.
type Variable struct {
	Name  string
	Value Expr
	Line  int
}

// Action is a named, parameterised statement list on a Page or a
// PageActions container.
type Action struct {
	Name       string
	Parameters []string
	Statements []Statement
	Line       int
}

// PageActions is a secondary action container whose actions target a
// page declared elsewhere.
type PageActions struct {
	Name    string
	ForPage string
	Actions []*Action
	Line    int
}

// --------------------------------------------------
// Features
// --------------------------------------------------

// Feature is a named collection of scenarios and hooks sharing a USE
// list.
type Feature struct {
	Name      string
	Uses      []*UseRef
	Hooks     []*Hook
	Fixtures  []*Fixture
	Scenarios []*Scenario
	Line      int
}

// UseRef names a Page or PageActions the feature depends on.
type UseRef struct {
	Name string
	Line int
}

// HookType positions a hook around the feature's scenarios.
type HookType int

const (
	BeforeAll HookType = iota
	BeforeEach
	AfterAll
	AfterEach
)

var hookNames = [...]string{
	BeforeAll:  "BEFORE ALL",
	BeforeEach: "BEFORE EACH",
	AfterAll:   "AFTER ALL",
	AfterEach:  "AFTER EACH",
}

func (h HookType) String() string {
	return hookNames[h]
}

// Hook is a lifecycle block whose statements surround scenarios.
type Hook struct {
	Type       HookType
	Statements []Statement
	Line       int
}

// Fixture is a named setup/teardown pair run around each scenario.
type Fixture struct {
	Name     string
	Setup    []Statement
	Teardown []Statement
	Line     int
}

// Annotation marks a scenario for special treatment by the runner.
type Annotation int

const (
	AnnSkip Annotation = iota
	AnnOnly
	AnnSlow
	AnnFixme
	AnnSerial
)

var annotationNames = [...]string{
	AnnSkip:   "skip",
	AnnOnly:   "only",
	AnnSlow:   "slow",
	AnnFixme:  "fixme",
	AnnSerial: "serial",
}

func (a Annotation) String() string {
	return annotationNames[a]
}

// Scenario is a single named test case.
type Scenario struct {
	Name        string
	Tags        []string
	Annotations []Annotation
	DependsOn   []string
	Statements  []Statement
	Line        int
}

// --------------------------------------------------
// Statements
// --------------------------------------------------

// Statement is implemented by every statement variant.
type Statement interface {
	stmt()
	Pos() int
}

type stmtBase struct {
	Line int
}

func (s stmtBase) stmt()    {}
func (s stmtBase) Pos() int { return s.Line }

// Target is a Page.field reference used in statements.
type Target struct {
	Page  string
	Field string
	Line  int
}

// ClickStatement clicks a target.
type ClickStatement struct {
	stmtBase
	Target Target
}

// FillStatement fills a target with a value.
type FillStatement struct {
	stmtBase
	Target Target
	Value  Expr
}

// OpenStatement navigates the page to a URL.
type OpenStatement struct {
	stmtBase
	URL Expr
}

// CheckStatement checks a checkbox target.
type CheckStatement struct {
	stmtBase
	Target Target
}

// UncheckStatement unchecks a checkbox target.
type UncheckStatement struct {
	stmtBase
	Target Target
}

// SelectStatement selects an option on a combobox target.
type SelectStatement struct {
	stmtBase
	Value  Expr
	Target Target
}

// HoverStatement hovers a target.
type HoverStatement struct {
	stmtBase
	Target Target
}

// PressStatement presses a keyboard key.
type PressStatement struct {
	stmtBase
	Key Expr
}

// ScrollStatement scrolls a target into view.
type ScrollStatement struct {
	stmtBase
	Target Target
}

// WaitStatement pauses the scenario.
type WaitStatement struct {
	stmtBase
	Amount       float64
	Milliseconds bool
}

// RefreshStatement reloads the page.
type RefreshStatement struct {
	stmtBase
}

// ClearStatement clears an input target.
type ClearStatement struct {
	stmtBase
	Target Target
}

// UploadStatement sets a file on an input target.
type UploadStatement struct {
	stmtBase
	Path   Expr
	Target Target
}

// DragStatement drags one target onto another.
type DragStatement struct {
	stmtBase
	Source Target
	Dest   Target
}

// LogStatement writes a value to the console.
type LogStatement struct {
	stmtBase
	Value Expr
}

// ScreenshotStatement captures a named screenshot.
type ScreenshotStatement struct {
	stmtBase
	Name string
}

// PerformStatement calls an action on a Page or PageActions.
type PerformStatement struct {
	stmtBase
	Container string
	Action    string
	Arguments []Expr
}

// ReturnStatement returns from an action.
type ReturnStatement struct {
	stmtBase
	Value Expr
}

// SetStatement binds a scenario- or page-scoped variable.
type SetStatement struct {
	stmtBase
	Name  string
	Value Expr
}

// IfStatement runs a branch when a condition holds.
type IfStatement struct {
	stmtBase
	Condition Condition
	Then      []Statement
	Else      []Statement
}

// RepeatStatement runs its body a fixed number of times.
type RepeatStatement struct {
	stmtBase
	Count      int
	Statements []Statement
}

// ForEachStatement iterates a bound collection.
type ForEachStatement struct {
	stmtBase
	ItemVariable       string
	CollectionVariable string
	Statements         []Statement
}

// TryCatchStatement wraps two statement lists.
type TryCatchStatement struct {
	stmtBase
	Try   []Statement
	Catch []Statement
}

// LoadStatement is the legacy list-valued table load.
type LoadStatement struct {
	stmtBase
	Variable string
	Table    string
}

// ApiRequestStatement performs an HTTP call through the host fixture.
type ApiRequestStatement struct {
	stmtBase
	Method  string // GET, POST, PUT, DELETE, PATCH
	URL     Expr
	Body    Expr
	Headers Expr
}

// ResponseTarget selects the part of the API response being verified.
type ResponseTarget int

const (
	RespStatus ResponseTarget = iota
	RespBody
	RespHeaders
)

// VerifyResponseStatement asserts on the last API response.
type VerifyResponseStatement struct {
	stmtBase
	Target   ResponseTarget
	Operator CompareOp
	Value    Expr
}

// MockApiStatement registers a route handler that fulfills requests.
type MockApiStatement struct {
	stmtBase
	URL    string
	Status int
	Body   Expr
}

// Tab operations. Exactly five forms exist; anything else is VERO-210.

// SwitchToNewTabStatement switches to a newly opened tab, optionally
// opening a URL in a fresh one.
type SwitchToNewTabStatement struct {
	stmtBase
	URL string
}

// SwitchToTabStatement switches to the 1-based nth open tab.
type SwitchToTabStatement struct {
	stmtBase
	Index int
}

// OpenInNewTabStatement opens a URL in a new tab.
type OpenInNewTabStatement struct {
	stmtBase
	URL string
}

// CloseTabStatement closes the active tab.
type CloseTabStatement struct {
	stmtBase
}

// --------------------------------------------------
// Verification
// --------------------------------------------------

// ConditionKind enumerates the element and page conditions VERIFY and
// IF can test.
type ConditionKind int

const (
	CondVisible ConditionKind = iota
	CondHidden
	CondEnabled
	CondDisabled
	CondChecked
	CondFocused
	CondEmpty
	CondHasText
	CondContainsText
	CondHasValue
	CondHasClass
	CondHasCount
	CondHasAttribute
	CondURLIs
	CondURLContains
	CondTitleIs
	CondTitleContains
	CondCompare
)

// Condition is the predicate of a Verify or If statement. Target is
// unset for URL/title and pure-expression conditions.
type Condition struct {
	Kind      ConditionKind
	Target    *Target
	Negated   bool
	Value     Expr
	Attribute string
	Count     int
	Left      Expr
	Operator  CompareOp
}

// VerifyStatement asserts a condition against a target or the page.
type VerifyStatement struct {
	stmtBase
	Condition Condition
}

// TolerancePreset selects a screenshot comparison strictness.
type TolerancePreset int

const (
	PresetBalanced TolerancePreset = iota
	PresetStrict
	PresetRelaxed
)

// VerifyScreenshotStatement compares the page against a named
// baseline.
type VerifyScreenshotStatement struct {
	stmtBase
	Baseline      string
	Preset        TolerancePreset
	Threshold     *float64
	MaxDiffPixels *int
	MaxDiffRatio  *float64
}

// --------------------------------------------------
// VDQL
// --------------------------------------------------

// ResultType is the declared shape of a data query binding.
type ResultType int

const (
	ResultData ResultType = iota
	ResultList
	ResultText
	ResultNumber
	ResultFlag
)

var resultNames = [...]string{
	ResultData:   "DATA",
	ResultList:   "LIST",
	ResultText:   "TEXT",
	ResultNumber: "NUMBER",
	ResultFlag:   "FLAG",
}

func (r ResultType) String() string {
	return resultNames[r]
}

// TableRef addresses a table, optionally narrowed to a column set, a
// row index, a row range, or a single cell.
type TableRef struct {
	Project    string
	Table      string
	Column     string
	Columns    []string
	RowIndex   *int
	RangeStart *int
	RangeEnd   *int
	CellRow    *int
	CellCol    *int
}

// Position selects a single row from a query result.
type Position int

const (
	PosNone Position = iota
	PosFirst
	PosLast
	PosRandom
)

// OrderKey is one ORDER BY sort key.
type OrderKey struct {
	Column     string
	Descending bool
}

// AggFunc enumerates the VDQL aggregation functions.
type AggFunc int

const (
	AggNone AggFunc = iota
	AggCount
	AggSum
	AggAverage
	AggMin
	AggMax
	AggDistinct
	AggRows
	AggColumns
	AggHeaders
)

var aggNames = [...]string{
	AggNone:    "",
	AggCount:   "COUNT",
	AggSum:     "SUM",
	AggAverage: "AVERAGE",
	AggMin:     "MIN",
	AggMax:     "MAX",
	AggDistinct: "DISTINCT",
	AggRows:    "ROWS",
	AggColumns: "COLUMNS",
	AggHeaders: "HEADERS",
}

func (a AggFunc) String() string {
	return aggNames[a]
}

// DataQuery is a table query with an optional aggregation.
type DataQuery struct {
	Ref          TableRef
	Where        DataCondition
	OrderBy      []OrderKey
	Limit        *int
	Offset       *int
	Position     Position
	DefaultValue Expr
	Function     AggFunc
	Distinct     bool
}

// DataQueryStatement binds a typed query result to a variable.
type DataQueryStatement struct {
	stmtBase
	ResultType ResultType
	Variable   string
	Query      *DataQuery
}

// CompareOp enumerates the VDQL comparison operators, shared with
// response and condition comparisons.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNeq
	OpGt
	OpLt
	OpGte
	OpLte
	OpContains
	OpStartsWith
	OpEndsWith
	OpMatches
	OpIn
	OpNotIn
	OpIsNull
	OpIsEmpty
	OpIsNotEmpty
)

var compareNames = [...]string{
	OpEq:         "==",
	OpNeq:        "!=",
	OpGt:         ">",
	OpLt:         "<",
	OpGte:        ">=",
	OpLte:        "<=",
	OpContains:   "CONTAINS",
	OpStartsWith: "STARTS WITH",
	OpEndsWith:   "ENDS WITH",
	OpMatches:    "MATCHES",
	OpIn:         "IN",
	OpNotIn:      "NOT IN",
	OpIsNull:     "IS NULL",
	OpIsEmpty:    "IS EMPTY",
	OpIsNotEmpty: "IS NOT EMPTY",
}

func (o CompareOp) String() string {
	return compareNames[o]
}

// DataCondition is a WHERE predicate tree.
type DataCondition interface {
	cond()
}

// AndCondition joins two predicates conjunctively.
type AndCondition struct {
	Left, Right DataCondition
}

// OrCondition joins two predicates disjunctively.
type OrCondition struct {
	Left, Right DataCondition
}

// NotCondition inverts a predicate.
type NotCondition struct {
	Inner DataCondition
}

// Comparison tests one column against a value or value list.
type Comparison struct {
	Column   string
	Operator CompareOp
	Value    Expr
	Values   []Expr
}

func (*AndCondition) cond() {}
func (*OrCondition) cond()  {}
func (*NotCondition) cond() {}
func (*Comparison) cond()   {}

// --------------------------------------------------
// Expressions
// --------------------------------------------------

// Expr is implemented by every expression variant.
type Expr interface {
	expr()
}

type exprBase struct{}

func (exprBase) expr() {}

// StringLiteral is a quoted string value.
type StringLiteral struct {
	exprBase
	Value string
}

// NumberLiteral is a numeric value.
type NumberLiteral struct {
	exprBase
	Value  float64
	Lexeme string
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	exprBase
	Value bool
}

// NullLiteral is the null value.
type NullLiteral struct {
	exprBase
}

// VariableReference names a bound variable, optionally qualified with
// the page it lives on.
type VariableReference struct {
	exprBase
	Name string
	Page string
}

// EnvVarReference is a {{name}} environment lookup.
type EnvVarReference struct {
	exprBase
	Name string
}

// MemberAccess reads a column or property off a bound value.
type MemberAccess struct {
	exprBase
	Object Expr
	Member string
}

// ArrayLiteral is a bracketed expression list.
type ArrayLiteral struct {
	exprBase
	Items []Expr
}

// TransformExpr applies one of the value transforms. Op is the
// transform keyword token.
type TransformExpr struct {
	exprBase
	Op   Kind
	Args []Expr
}
