package render

import (
	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/widgets"
)

// AlertKind maps to the alert colour shown to the user.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "danger"
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
)

// Alert is a user visible notification.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

// PageState selects the main content block of the dashboard.
type PageState string

const (
	// StateIdle: nothing selected, or the reference declares no fields.
	StateIdle PageState = "idle"
	// StateBlocked: a configured file is missing, generation is disabled.
	StateBlocked PageState = "blocked"
	// StateComplete: every field has a value; a single generate button.
	StateComplete PageState = "complete"
	// StateForm: some fields need input.
	StateForm PageState = "form"
)

// Status is one line of the file status panel.
type Status struct {
	model.FileStatus
	Message string `json:"message"`
}

// Page is the view model of the dashboard.
type Page struct {
	Groups   []registry.Group  `json:"groups"`
	Selected string            `json:"selected,omitempty"`
	Help     string            `json:"help,omitempty"`
	Analysis *model.Analysis   `json:"analysis,omitempty"`
	Statuses []Status          `json:"statuses,omitempty"`
	State    PageState         `json:"state"`
	Notice   *Alert            `json:"notice,omitempty"`
	Controls []widgets.Control `json:"controls,omitempty"`
	Alerts   []Alert           `json:"alerts,omitempty"`
}

// PageOption customises NewPage.
type PageOption func(*Page)

// WithControls supplies the form controls instead of deriving them from the
// analysis with the built-in widget registry.
func WithControls(controls []widgets.Control) PageOption {
	return func(p *Page) {
		p.Controls = controls
	}
}

// WithAlerts appends notifications.
func WithAlerts(alerts ...Alert) PageOption {
	return func(p *Page) {
		p.Alerts = append(p.Alerts, alerts...)
	}
}

// WithHelp sets the sanitised help markup of the selected entry.
func WithHelp(help string) PageOption {
	return func(p *Page) {
		p.Help = help
	}
}

// NewPage assembles the dashboard for an analysis. A nil analysis renders the
// selector alone.
func NewPage(loc Localizer, groups []registry.Group, analysis *model.Analysis, opts ...PageOption) Page {
	page := Page{Groups: groups, Analysis: analysis, State: StateIdle}
	for _, opt := range opts {
		if opt != nil {
			opt(&page)
		}
	}

	if analysis == nil {
		page.Notice = &Alert{Kind: AlertWarning, Message: loc.T(MsgSelectPrompt)}
		return page
	}

	page.Selected = analysis.Label
	page.Statuses = Statuses(loc, *analysis)
	for _, diagnostic := range analysis.Diagnostics {
		page.Statuses = append(page.Statuses, Status{Message: loc.T(MsgDiagnosticPrefix, diagnostic)})
	}

	switch {
	case !analysis.Ready():
		page.State = StateBlocked
		missing := analysis.Reference.Path
		if analysis.Reference.Exists {
			missing = analysis.Template.Path
		}
		page.Notice = &Alert{Kind: AlertError, Message: loc.T(MsgCannotContinue, missing)}
	case len(analysis.Fields) == 0:
		page.Notice = &Alert{Kind: AlertInfo, Message: loc.T(MsgStartHint)}
	case analysis.Complete():
		page.State = StateComplete
	default:
		page.State = StateForm
		if page.Controls == nil {
			page.Controls = widgets.Controls(analysis.Missing)
		}
	}
	if page.State != StateForm {
		page.Controls = nil
	}
	return page
}

// Statuses renders the found/not-found line for both configured files.
func Statuses(loc Localizer, analysis model.Analysis) []Status {
	out := make([]Status, 0, 2)
	for _, status := range analysis.Statuses() {
		var message string
		switch {
		case !status.Exists:
			message = loc.T(MsgFileMissing, status.Path)
		case status.Role == model.RoleTemplate:
			message = loc.T(MsgTemplateFound, status.Path)
		default:
			message = loc.T(MsgReferenceFound, status.Path)
		}
		out = append(out, Status{FileStatus: status, Message: message})
	}
	return out
}

// GenerateError is the alert shown when an export fails.
func GenerateError(loc Localizer, err error) Alert {
	return Alert{Kind: AlertError, Message: loc.T(MsgGenerateError, err.Error())}
}

// GenerateSuccess is the alert shown after an export.
func GenerateSuccess(loc Localizer) Alert {
	return Alert{Kind: AlertSuccess, Message: loc.T(MsgGenerateSuccess)}
}
