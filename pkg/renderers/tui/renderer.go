package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/widgets"
)

const selectPageSize = 15

// Renderer implements render.Renderer for terminal sessions. Rendering a page
// prompts for its missing fields and returns the collected values.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	prefixes          Prefixes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatJSON}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for the page's missing fields and serializes the answers.
func (r *Renderer) Render(ctx context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, page, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Collect shows the status lines of page and prompts for every control.
// Controls with a non-empty value in opts.Values are not asked again. A
// complete page asks for confirmation and collects nothing.
func (r *Renderer) Collect(ctx context.Context, page render.Page, opts render.RenderOptions) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for _, status := range page.Statuses {
		prefix := r.prefixes.Info
		if !status.Exists {
			prefix = r.prefixes.Error
		}
		if err := r.driver.Info(ctx, prefix+status.Message); err != nil {
			return nil, err
		}
	}
	for _, alert := range page.Alerts {
		if err := r.driver.Info(ctx, r.prefixFor(alert.Kind)+alert.Message); err != nil {
			return nil, err
		}
	}
	if page.Notice != nil {
		if err := r.driver.Info(ctx, r.prefixFor(page.Notice.Kind)+page.Notice.Message); err != nil {
			return nil, err
		}
	}

	values := make(map[string]string)
	switch page.State {
	case render.StateBlocked:
		return nil, ErrBlocked
	case render.StateComplete:
		loc := opts.Localizer
		if err := r.driver.Info(ctx, r.prefixes.Info+loc.T(render.MsgCompleteHeader)); err != nil {
			return nil, err
		}
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.prefixes.Prompt + loc.T(render.MsgCompleteAction),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	case render.StateForm:
		for _, control := range page.Controls {
			value, err := r.promptControl(ctx, control, opts.Values)
			if err != nil {
				return nil, err
			}
			values[control.Name] = value
		}
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return values, nil
}

func (r *Renderer) promptControl(ctx context.Context, control widgets.Control, preset map[string]string) (string, error) {
	if value := preset[control.Name]; value != "" {
		return value, nil
	}
	message := r.prefixes.Prompt + control.Label
	if control.Multiline() {
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: control.Value,
			Help:    control.Placeholder,
		})
		if err != nil {
			return "", fmt.Errorf("tui: prompt %s: %w", control.Name, err)
		}
		return strings.ReplaceAll(value, "\r\n", "\n"), nil
	}
	value, err := r.driver.Input(ctx, InputConfig{
		Message: message,
		Default: control.Value,
		Help:    control.Placeholder,
	})
	if err != nil {
		return "", fmt.Errorf("tui: prompt %s: %w", control.Name, err)
	}
	return value, nil
}

// ChooseType asks for a document type. Options are listed per category in
// registry order and current is preselected when present.
func (r *Renderer) ChooseType(ctx context.Context, loc render.Localizer, groups []registry.Group, current string) (string, error) {
	var labels, options []string
	defaultIndex := 0
	for _, group := range groups {
		for _, entry := range group.Entries {
			if entry.Label == current {
				defaultIndex = len(labels)
			}
			labels = append(labels, entry.Label)
			if group.Category != "" {
				options = append(options, group.Category+" › "+entry.Label)
			} else {
				options = append(options, entry.Label)
			}
		}
	}
	if len(labels) == 0 {
		return "", ErrNoTypes
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prefixes.Prompt + loc.T(render.MsgSelectorHeader),
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     selectPageSize,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(labels) {
		return "", fmt.Errorf("tui: selection %d out of range", idx)
	}
	return labels[idx], nil
}

func (r *Renderer) prefixFor(kind render.AlertKind) string {
	if kind == render.AlertError {
		return r.prefixes.Error
	}
	return r.prefixes.Info
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	return json.Marshal(values)
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
