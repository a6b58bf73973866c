package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-docform/pkg/apispec"
	"github.com/goliatone/go-docform/pkg/model"
)

type generateRequest struct {
	Values map[string]string `json:"values"`
}

func (s *Server) listTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.docs.Registry().Groups())
}

func (s *Server) analysis(c echo.Context) error {
	analysis, err := s.docs.Analyze(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// apiGenerate analyses ?type= afresh and renders it with the posted values.
func (s *Server) apiGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	analysis, err := s.docs.Analyze(ctx, c.QueryParam("type"))
	if err != nil {
		return apiError(err)
	}
	out, err := s.docs.Generate(ctx, analysis, req.Values)
	if err != nil {
		return apiError(err)
	}
	return attachment(c, out)
}

// openAPI describes the API. Types whose files are present get a submission
// schema listing their missing fields.
func (s *Server) openAPI(c echo.Context) error {
	ctx := c.Request().Context()
	entries := s.docs.Registry().Entries()
	analyses := make(map[string]model.Analysis, len(entries))
	for _, entry := range entries {
		analysis, err := s.docs.Analyze(ctx, entry.Label)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		if analysis.Ready() {
			analyses[entry.Label] = analysis
		}
	}

	doc, err := apispec.Build(ctx, s.info, entries, analyses)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
