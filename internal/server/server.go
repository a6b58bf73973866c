package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/goliatone/go-docform/pkg/apispec"
	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/vanilla"
	"github.com/goliatone/go-docform/pkg/session"
)

// supportedLocales lists the catalog languages; the first one is the
// fallback of the Accept-Language matcher.
var supportedLocales = []language.Tag{language.Vietnamese, language.English}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLocale sets the locale used when a request does not ask for one.
func WithLocale(locale string) Option {
	return func(s *Server) {
		if strings.TrimSpace(locale) != "" {
			s.locale = locale
		}
	}
}

// WithTranslator replaces the built-in message catalog.
func WithTranslator(translator render.Translator) Option {
	return func(s *Server) {
		if translator != nil {
			s.translator = translator
		}
	}
}

// WithAPIInfo sets the info object of the OpenAPI document.
func WithAPIInfo(info apispec.Info) Option {
	return func(s *Server) {
		s.info = info
	}
}

// Server exposes the dashboard and the JSON API over HTTP.
type Server struct {
	echo       *echo.Echo
	docs       *orchestrator.Orchestrator
	sessions   *session.Store
	translator render.Translator
	locale     string
	matcher    language.Matcher
	info       apispec.Info
	logger     zerolog.Logger
}

// New creates the server and registers its routes.
func New(docs *orchestrator.Orchestrator, sessions *session.Store, opts ...Option) *Server {
	if docs == nil {
		docs = orchestrator.New()
	}
	if sessions == nil {
		sessions = session.NewStore()
	}
	s := &Server{
		echo:       echo.New(),
		docs:       docs,
		sessions:   sessions,
		translator: render.NewCatalog(),
		locale:     render.DefaultLocale,
		matcher:    language.NewMatcher(supportedLocales),
		info:       apispec.DefaultInfo(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestLogger(s.logger))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	s.echo.StaticFS("/assets", vanilla.AssetsFS())

	s.echo.GET("/", s.index)
	s.echo.POST(vanilla.DefaultSelectAction, s.selectType)
	s.echo.POST(vanilla.DefaultGenerateAction, s.generate)

	api := s.echo.Group("/api")
	api.GET("/types", s.listTypes)
	api.GET("/analysis", s.analysis)
	api.POST("/generate", s.apiGenerate)
	api.GET("/openapi.json", s.openAPI)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then shuts down within grace.
func (s *Server) Start(ctx context.Context, addr string, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("server listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Dur("grace", grace).Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// localizer picks ?lang=, then Accept-Language, then the configured locale.
func (s *Server) localizer(c echo.Context) render.Localizer {
	locale := s.locale
	if lang := strings.TrimSpace(c.QueryParam("lang")); lang != "" {
		locale = lang
	} else if accept := c.Request().Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if tag, _, confidence := s.matcher.Match(tags...); confidence != language.No {
				base, _ := tag.Base()
				locale = base.String()
			}
		}
	}
	return render.Localizer{Translator: s.translator, Locale: locale}
}
