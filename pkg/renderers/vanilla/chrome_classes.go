package vanilla

// ChromeClass is a typed identifier for the dashboard's semantic CSS classes.
type ChromeClass string

const (
	ClassBody      ChromeClass = "docform-body"
	ClassContainer ChromeClass = "docform-container"
	ClassHeader    ChromeClass = "docform-header"
	ClassSidebar   ChromeClass = "docform-sidebar"
	ClassContent   ChromeClass = "docform-content"
	ClassCard      ChromeClass = "docform-card"
	ClassForm      ChromeClass = "docform-form"
	ClassButton    ChromeClass = "docform-button"
)

// Classes lets callers swap the chrome classes for their own design system.
// Empty entries keep the defaults.
type Classes struct {
	Body      string
	Container string
	Header    string
	Sidebar   string
	Content   string
	Card      string
	Form      string
	Button    string
}

// DefaultClasses returns the classes styled by the embedded stylesheet.
func DefaultClasses() Classes {
	return Classes{
		Body:      string(ClassBody),
		Container: string(ClassContainer),
		Header:    string(ClassHeader),
		Sidebar:   string(ClassSidebar),
		Content:   string(ClassContent),
		Card:      string(ClassCard),
		Form:      string(ClassForm),
		Button:    string(ClassButton),
	}
}

func (c Classes) withDefaults() Classes {
	def := DefaultClasses()
	pick := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}
	return Classes{
		Body:      pick(c.Body, def.Body),
		Container: pick(c.Container, def.Container),
		Header:    pick(c.Header, def.Header),
		Sidebar:   pick(c.Sidebar, def.Sidebar),
		Content:   pick(c.Content, def.Content),
		Card:      pick(c.Card, def.Card),
		Form:      pick(c.Form, def.Form),
		Button:    pick(c.Button, def.Button),
	}
}

func (c Classes) context() map[string]string {
	return map[string]string{
		"body":      c.Body,
		"container": c.Container,
		"header":    c.Header,
		"sidebar":   c.Sidebar,
		"content":   c.Content,
		"card":      c.Card,
		"form":      c.Form,
		"button":    c.Button,
	}
}
