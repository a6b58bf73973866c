package server

import (
	"errors"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
)

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnknownType):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrFilesMissing), render.IsConfigError(err):
		return http.StatusConflict
	case render.IsRenderError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// apiError converts known pipeline errors into echo HTTP errors; anything
// else is left for the default handler.
func apiError(err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return err
	}
	return echo.NewHTTPError(status, err.Error())
}

// generateAlert is the dashboard message for a failed export.
func generateAlert(loc render.Localizer, err error) render.Alert {
	if render.IsConfigError(err) {
		return render.Alert{Kind: render.AlertError, Message: loc.T(render.MsgTemplateMissing)}
	}
	return render.GenerateError(loc, err)
}

// attachment sends a generated document for download. Non-ASCII names are
// encoded per RFC 2231.
func attachment(c echo.Context, out render.Output) error {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	return c.Blob(http.StatusOK, out.ContentType, out.Content)
}
