package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/session"
	"github.com/goliatone/go-docform/pkg/testsupport"
)

const (
	typeLetter   = "Công văn"
	typeComplete = "Giấy mời"
	typeMissing  = "Thiếu file"
)

func newTestServer(t *testing.T) (*Server, *session.Store) {
	t.Helper()
	dir := t.TempDir()
	testsupport.NewDocx().
		Table(
			[]string{"Tên trường", "Nhãn", "Giá trị"},
			[]string{"so_ky_hieu", "Số ký hiệu", "123/UBND-VP"},
			[]string{"noi_nhan", "Nơi nhận", ""},
			[]string{"nguoi_ky", "Người ký", ""},
		).
		WriteFile(t, dir, "list.docx")
	testsupport.NewDocx().
		Paragraph("Số: {{ so_ky_hieu }}").
		Paragraph("Kính gửi: {{ noi_nhan }}").
		Paragraph("{{ nguoi_ky }}").
		WriteFile(t, dir, "mau.docx")
	testsupport.NewDocx().
		Paragraph("so_ky_hieu: 7/GM").
		WriteFile(t, dir, "list_full.docx")
	testsupport.NewDocx().
		Paragraph("{% for %}").
		WriteFile(t, dir, "mau_broken.docx")

	reg, err := registry.New([]registry.Entry{
		{Label: typeLetter, Category: "Công văn", ReferencePath: "list.docx", TemplatePath: "mau.docx"},
		{Label: typeComplete, Category: "Công văn", ReferencePath: "list_full.docx", TemplatePath: "mau_broken.docx"},
		{Label: typeMissing, Category: "Khác", ReferencePath: "absent.docx", TemplatePath: "mau.docx"},
	})
	require.NoError(t, err)

	sessions := session.NewStore()
	docs := orchestrator.New(orchestrator.WithRegistry(reg), orchestrator.WithDataDir(dir))
	return New(docs, sessions), sessions
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.DefaultCookieName {
			return cookie
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func postForm(target string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIndexSelectsDefaultType(t *testing.T) {
	srv, sessions := newTestServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `name="noi_nhan"`)
	assert.Contains(t, body, `name="nguoi_ky"`)
	assert.NotContains(t, body, `name="so_ky_hieu"`)
	assert.Contains(t, body, "✅ Template:")

	cookie := sessionCookie(t, rec)
	state, ok := sessions.Get(cookie.Value)
	require.True(t, ok)
	assert.Equal(t, typeLetter, state.Selected)
	require.NotNil(t, state.Analysis)
	assert.Len(t, state.Analysis.Missing, 2)
}

func TestIndexUnknownTypeQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/?type=Nope&lang=en", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown document type: Nope")
}

func TestIndexJSONFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/?format=json&type="+url.QueryEscape(typeMissing), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page render.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, render.StateBlocked, page.State)
	assert.Equal(t, typeMissing, page.Selected)
	require.NotNil(t, page.Notice)
	assert.Contains(t, page.Notice.Message, "absent.docx")
}

func TestAcceptLanguage(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := serve(srv, req)
	assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	assert.Contains(t, rec.Body.String(), "Please fill in the missing data")
}

func TestSelectKeepsSessionsIsolated(t *testing.T) {
	srv, sessions := newTestServer(t)

	first := sessionCookie(t, serve(srv, httptest.NewRequest(http.MethodGet, "/", nil)))
	second := sessionCookie(t, serve(srv, httptest.NewRequest(http.MethodGet, "/", nil)))
	require.NotEqual(t, first.Value, second.Value)

	rec := serve(srv, postForm("/select", url.Values{"type": {typeMissing}}, first))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	one, _ := sessions.Get(first.Value)
	two, _ := sessions.Get(second.Value)
	assert.Equal(t, typeMissing, one.Selected)
	assert.Equal(t, typeLetter, two.Selected)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(first)
	assert.Contains(t, serve(srv, req).Body.String(), "absent.docx")
}

func TestSelectUnknownType(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, postForm("/select", url.Values{"type": {"Nope"}}, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Không có loại văn bản: Nope")
}

func TestGenerateDownloadsDocument(t *testing.T) {
	srv, sessions := newTestServer(t)
	cookie := sessionCookie(t, serve(srv, httptest.NewRequest(http.MethodGet, "/", nil)))

	rec := serve(srv, postForm("/generate", url.Values{
		"noi_nhan": {"Sở Nội vụ\r\nVăn phòng"},
		"nguoi_ky": {"Nguyễn Văn A"},
	}, cookie))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, docx.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cong_van_123_UBND-VP.docx")

	doc, err := docx.ReadBytes(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Số: 123/UBND-VP", doc.Paragraphs[0])
	assert.Equal(t, "Nguyễn Văn A", doc.Paragraphs[len(doc.Paragraphs)-1])

	state, _ := sessions.Get(cookie.Value)
	require.Len(t, state.Flash, 1)
	assert.Equal(t, render.AlertSuccess, state.Flash[0].Kind)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Contains(t, serve(srv, req).Body.String(), "Văn bản đã được tạo thành công")
	state, _ = sessions.Get(cookie.Value)
	assert.Empty(t, state.Flash)
}

func TestGenerateRenderFailureKeepsSelection(t *testing.T) {
	srv, sessions := newTestServer(t)
	cookie := sessionCookie(t, serve(srv, httptest.NewRequest(http.MethodGet, "/?type="+url.QueryEscape(typeComplete), nil)))

	rec := serve(srv, postForm("/generate", url.Values{}, cookie))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lỗi khi tạo văn bản")
	assert.Contains(t, rec.Body.String(), `data-state="complete"`)

	state, _ := sessions.Get(cookie.Value)
	assert.Equal(t, typeComplete, state.Selected)
}

func TestGenerateBlockedWhenReferenceMissing(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := sessionCookie(t, serve(srv, httptest.NewRequest(http.MethodGet, "/?type="+url.QueryEscape(typeMissing), nil)))

	rec := serve(srv, postForm("/generate", url.Values{}, cookie))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPITypesAndAnalysis(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/types", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []registry.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Công văn", groups[0].Category)
	assert.Len(t, groups[0].Entries, 2)

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/api/analysis?type="+url.QueryEscape(typeLetter), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var analysis model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, "123/UBND-VP", analysis.Data["so_ky_hieu"])
	assert.True(t, analysis.Placeholders.Has("noi_nhan"))
	assert.Len(t, analysis.Missing, 2)

	rec = serve(srv, httptest.NewRequest(http.MethodGet, "/api/analysis?type=Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIGenerate(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate?type="+url.QueryEscape(typeLetter),
		strings.NewReader(`{"values":{"noi_nhan":"A & B <C>"}}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := docx.ReadBytes(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Kính gửi: A & B <C>", doc.Paragraphs[1])
	assert.Equal(t, "[nguoi_ky]", doc.Paragraphs[2])

	req = httptest.NewRequest(http.MethodPost, "/api/generate?type="+url.QueryEscape(typeComplete), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, serve(srv, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/generate?type="+url.QueryEscape(typeMissing), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusConflict, serve(srv, req).Code)
}

func TestOpenAPIDocument(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, path := range []string{"/api/types", "/api/analysis", "/api/generate"} {
		assert.Contains(t, paths, path)
	}
	assert.Contains(t, rec.Body.String(), `"x-docform-label":"Nơi nhận"`)
}

func TestAssetsServed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/assets/docform.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".docform-")
}
