package gotemplate

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-docform/pkg/render/template"
)

const (
	defaultExtension = ".tpl"
	defaultCacheSize = 64
)

var registerFilters sync.Once

// Option configures an Engine.
type Option func(*Engine)

// WithFS loads named templates from files. Includes resolve relative to the
// including template.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithStringCache bounds how many compiled document parts are kept, keyed by
// content hash. Zero disables the cache.
func WithStringCache(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// Engine renders pongo2 templates. Document parts go through RenderString and
// dashboard pages through RenderTemplate.
type Engine struct {
	files     fs.FS
	ext       string
	cacheSize int

	set    *pongo2.TemplateSet
	parts  *lru.Cache[[sha256.Size]byte, *pongo2.Template]
	mu     sync.Mutex
	byName map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. Without WithFS only inline content can be rendered.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:       defaultExtension,
		cacheSize: defaultCacheSize,
		byName:    map[string]*pongo2.Template{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	files := e.files
	if files == nil {
		files = noFiles{}
	}
	e.set = pongo2.NewSet("docform", pongo2.NewFSLoader(files))

	if e.cacheSize > 0 {
		cache, err := lru.New[[sha256.Size]byte, *pongo2.Template](e.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: string cache: %w", err)
		}
		e.parts = cache
	}

	registerFilters.Do(func() {
		if !pongo2.FilterExists("placeholder") {
			_ = pongo2.RegisterFilter("placeholder", placeholderFilter)
		}
	})
	return e, nil
}

// Render treats source as inline content when it carries template tags and
// as a template name otherwise.
func (e *Engine) Render(source string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(source, "{{") || strings.Contains(source, "{%") {
		return e.RenderString(source, data, out...)
	}
	return e.RenderTemplate(source, data, out...)
}

// RenderTemplate renders the named template from the configured files.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.named(name)
	if err != nil {
		return "", err
	}
	result, err := execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}
	return result, nil
}

// RenderString compiles content, reusing a cached compilation when the same
// content was rendered before.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.compile(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse: %w", err)
	}
	result, err := execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute: %w", err)
	}
	return result, nil
}

func (e *Engine) named(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.byName[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.byName[name] = tmpl
	return tmpl, nil
}

func (e *Engine) compile(content string) (*pongo2.Template, error) {
	if e.parts == nil {
		return e.set.FromString(content)
	}
	key := sha256.Sum256([]byte(content))
	if tmpl, ok := e.parts.Get(key); ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return nil, err
	}
	e.parts.Add(key, tmpl)
	return tmpl, nil
}

func execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := contextOf(data)
	if err != nil {
		return "", err
	}
	result, err := tmpl.Execute(ctx)
	if err != nil {
		return "", err
	}
	for _, w := range out {
		if _, err := io.WriteString(w, result); err != nil {
			return "", err
		}
	}
	return result, nil
}

// contextOf exposes data to templates under its JSON field names, so page
// structs read as page.state or control.widget.
func contextOf(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case map[string]string:
		ctx := make(pongo2.Context, len(v))
		for key, value := range v {
			ctx[key] = value
		}
		return ctx, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode template data: %w", err)
	}
	var ctx pongo2.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("template data must be an object: %w", err)
	}
	return ctx, nil
}

// placeholderFilter renders "[param]" for an empty input, the marker used for
// unfilled fields.
func placeholderFilter(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if strings.TrimSpace(in.String()) != "" {
		return in, nil
	}
	return pongo2.AsValue("[" + param.String() + "]"), nil
}

type noFiles struct{}

func (noFiles) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
