package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/session"
)

// index renders the dashboard for ?type=, the session selection, or the
// registry default, in that order. File statuses are re-checked each time.
func (s *Server) index(c echo.Context) error {
	ctx := c.Request().Context()
	loc := s.localizer(c)
	id := s.sessions.Ensure(c.Response(), c.Request())
	state, _ := s.sessions.Get(id)

	alerts := state.Flash
	state.Flash = nil
	status := http.StatusOK

	label := strings.TrimSpace(c.QueryParam("type"))
	if label == "" {
		label = state.Selected
	}
	if label == "" {
		if entry, ok := s.docs.Registry().Default(); ok {
			label = entry.Label
		}
	}

	var analysis *model.Analysis
	if label != "" {
		result, err := s.docs.Analyze(ctx, label)
		switch {
		case errors.Is(err, registry.ErrUnknownType):
			status = http.StatusNotFound
			alerts = append(alerts, unknownTypeAlert(loc, label))
		case err != nil:
			return err
		default:
			if result.Label != state.Selected {
				state.Values = nil
			}
			state.Selected = result.Label
			analysis = &result
		}
	}
	state.Analysis = analysis
	s.sessions.Put(id, state)

	return s.renderPage(c, status, loc, analysis, state.Values, alerts...)
}

// selectType stores the posted type in the session and redirects to the
// dashboard.
func (s *Server) selectType(c echo.Context) error {
	label := strings.TrimSpace(c.FormValue("type"))
	if !s.docs.Registry().Has(label) {
		loc := s.localizer(c)
		return s.renderPage(c, http.StatusNotFound, loc, nil, nil, unknownTypeAlert(loc, label))
	}

	id := s.sessions.Ensure(c.Response(), c.Request())
	state, _ := s.sessions.Get(id)
	if state.Selected != label {
		state = session.State{Selected: label, Flash: state.Flash}
	}
	s.sessions.Put(id, state)
	return c.Redirect(http.StatusSeeOther, "/")
}

// generate merges the session analysis with the posted form and sends the
// document. Failures re-render the dashboard with the submitted values.
func (s *Server) generate(c echo.Context) error {
	ctx := c.Request().Context()
	loc := s.localizer(c)
	id := s.sessions.Ensure(c.Response(), c.Request())
	state, _ := s.sessions.Get(id)

	if state.Analysis == nil {
		label := state.Selected
		if label == "" {
			if entry, ok := s.docs.Registry().Default(); ok {
				label = entry.Label
			}
		}
		result, err := s.docs.Analyze(ctx, label)
		if errors.Is(err, registry.ErrUnknownType) {
			return s.renderPage(c, http.StatusNotFound, loc, nil, nil, unknownTypeAlert(loc, label))
		}
		if err != nil {
			return err
		}
		state.Selected = result.Label
		state.Analysis = &result
	}

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	submitted := render.CollectSubmission(form, state.Analysis.Missing)

	out, err := s.docs.Generate(ctx, *state.Analysis, submitted)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			return err
		}
		state.Values = submitted
		s.sessions.Put(id, state)
		return s.renderPage(c, status, loc, state.Analysis, submitted, generateAlert(loc, err))
	}

	state.Values = nil
	state.Flash = append(state.Flash, render.GenerateSuccess(loc))
	s.sessions.Put(id, state)
	return attachment(c, out)
}

// renderPage draws the dashboard with the default renderer, or as JSON when
// ?format=json is given.
func (s *Server) renderPage(c echo.Context, status int, loc render.Localizer, analysis *model.Analysis, values map[string]string, alerts ...render.Alert) error {
	page := s.docs.Page(loc, analysis, render.WithAlerts(alerts...))

	name := ""
	if c.QueryParam("format") == "json" {
		name = render.JSONRenderer{}.Name()
	}
	body, contentType, err := s.docs.Render(c.Request().Context(), name, page, render.RenderOptions{
		Values:    values,
		Localizer: loc,
	})
	if err != nil {
		return err
	}
	return c.Blob(status, contentType, body)
}

func unknownTypeAlert(loc render.Localizer, label string) render.Alert {
	return render.Alert{Kind: render.AlertError, Message: loc.T(render.MsgUnknownType, label)}
}
