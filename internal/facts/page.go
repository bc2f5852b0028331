package facts

// Strategy names the derivation rule that produced a locator's selector.
type Strategy string

const (
	StrategyTestID      Strategy = "testId"
	StrategyRole        Strategy = "role"
	StrategyLabel       Strategy = "label"
	StrategyPlaceholder Strategy = "placeholder"
	StrategyAltText     Strategy = "altText"
	StrategyText        Strategy = "text"
	StrategyCSS         Strategy = "css"
)

// ElementKind is a coarse classification of the located element.
type ElementKind string

const (
	ElemButton   ElementKind = "button"
	ElemLink     ElementKind = "link"
	ElemInput    ElementKind = "input"
	ElemSelect   ElementKind = "select"
	ElemTextarea ElementKind = "textarea"
	ElemCheckbox ElementKind = "checkbox"
	ElemRadio    ElementKind = "radio"
	ElemHeading  ElementKind = "heading"
	ElemImage    ElementKind = "image"
	ElemForm     ElementKind = "form"
	ElemDialog   ElementKind = "dialog"
	ElemAlert    ElementKind = "alert"
	ElemTab      ElementKind = "tab"
	ElemMenuItem ElementKind = "menuitem"
	ElemText     ElementKind = "text"
	ElemGeneric  ElementKind = "generic"
)

// InteractiveKinds lists element kinds a test would click, fill, or select.
var InteractiveKinds = map[ElementKind]bool{
	ElemButton:   true,
	ElemLink:     true,
	ElemInput:    true,
	ElemSelect:   true,
	ElemTextarea: true,
	ElemCheckbox: true,
	ElemRadio:    true,
	ElemTab:      true,
	ElemMenuItem: true,
}

// Locator is one resolved UI-element selector. Immutable once created; owned
// by exactly one Page, and its Selector is unique within that page.
type Locator struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Selector      string      `json:"selectorExpression"`
	Strategy      Strategy    `json:"strategy"`
	ElementKind   ElementKind `json:"elementKind"`
	IsInteractive bool        `json:"isInteractive"`
	IsConditional bool        `json:"isConditional"`
	IsDynamic     bool        `json:"isDynamic"`
	Confidence    float64     `json:"confidence"`
	Flags         FlagSet     `json:"flags,omitempty"`
}

// FormAction is a single scripted interaction within a form flow.
type FormAction string

const (
	ActionFill   FormAction = "fill"
	ActionClick  FormAction = "click"
	ActionCheck  FormAction = "check"
	ActionSelect FormAction = "select"
)

// FormStep is one ordered step of a form flow.
type FormStep struct {
	Order     int        `json:"order"`
	Action    FormAction `json:"action"`
	Selector  string     `json:"selectorExpression"`
	TestValue string     `json:"testValue,omitempty"`
	FieldKind string     `json:"fieldKind,omitempty"`
}

// FormFlow is a fill-and-submit sequence extracted from a form element.
type FormFlow struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	TestID              string     `json:"testId,omitempty"`
	Steps               []FormStep `json:"steps"`
	TargetPath          string     `json:"targetPath,omitempty"`   // form submission target
	TargetMethod        string     `json:"targetMethod,omitempty"` // defaults to POST
	LinkedEndpointID    string     `json:"linkedEndpointId,omitempty"`
	SuccessRedirectHint string     `json:"successRedirectHint,omitempty"`
}

// Page is one extracted UI surface. Merge identity is Route; merged pages
// union their locators, never replace them.
type Page struct {
	ID                string     `json:"id"`
	Route             string     `json:"route"`
	NormalizedRoute   string     `json:"normalizedRoute"`
	Title             string     `json:"title,omitempty"`
	FilePath          string     `json:"filePath,omitempty"`
	AuthRequired      bool       `json:"authRequired"`
	Roles             StrSet     `json:"roles,omitempty"`
	IsDynamic         bool       `json:"isDynamic"`
	RouteParams       []string   `json:"routeParams,omitempty"`
	Locators          []Locator  `json:"locators"`
	FormFlows         []FormFlow `json:"formFlows,omitempty"`
	NavigationLinks   []string   `json:"navigationLinks,omitempty"`
	LinkedEndpointIDs StrSet     `json:"linkedEndpointIds,omitempty"`
	Confidence        float64    `json:"confidence"`
}

// HasSelector reports whether the page already owns a locator with the exact
// selector expression. Dedup is by selector-string identity.
func (p *Page) HasSelector(selector string) bool {
	for i := range p.Locators {
		if p.Locators[i].Selector == selector {
			return true
		}
	}
	return false
}
