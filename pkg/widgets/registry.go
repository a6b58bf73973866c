package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-docform/pkg/model"
)

// Widget names understood by the page renderers.
const (
	WidgetText     = "text"
	WidgetTextArea = "textarea"
)

// Matcher reports whether a widget applies to field.
type Matcher func(field model.Field) bool

type rule struct {
	widget   string
	priority int
	match    Matcher
}

// Registry picks the widget for a field. A per-field override wins, then the
// first matching rule by descending priority. Rules of equal priority keep
// registration order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	overrides map[string]string
}

// NewRegistry returns a registry that maps multi-line fields to a textarea
// and every other field to a text input.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(WidgetTextArea, 90, func(f model.Field) bool { return f.Kind == model.KindMultiLineText })
	r.Register(WidgetText, 0, func(model.Field) bool { return true })
	return r
}

// Register adds a rule selecting widget when match accepts the field.
func (r *Registry) Register(widget string, priority int, match Matcher) {
	widget = strings.TrimSpace(widget)
	if r == nil || widget == "" || match == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	at := sort.Search(len(r.rules), func(i int) bool { return r.rules[i].priority < priority })
	r.rules = append(r.rules, rule{})
	copy(r.rules[at+1:], r.rules[at:])
	r.rules[at] = rule{widget: widget, priority: priority, match: match}
}

// Override pins widget for the field called name. An empty widget clears it.
func (r *Registry) Override(name, widget string) {
	name, widget = strings.TrimSpace(name), strings.TrimSpace(widget)
	if r == nil || name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if widget == "" {
		delete(r.overrides, name)
		return
	}
	if r.overrides == nil {
		r.overrides = map[string]string{}
	}
	r.overrides[name] = widget
}

// Resolve returns the widget for field, or false when nothing matches.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if widget, ok := r.overrides[field.Name]; ok {
		return widget, true
	}
	for _, candidate := range r.rules {
		if candidate.match(field) {
			return candidate.widget, true
		}
	}
	return "", false
}
