package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docform/pkg/model"
)

func TestEnsureIssuesCookieOnce(t *testing.T) {
	store := NewStore(WithCookieName("sid"), WithTTL(time.Minute))

	rec := httptest.NewRecorder()
	id := store.Ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid session id, got %q", id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != id || !cookies[0].HttpOnly || cookies[0].MaxAge != 60 {
		t.Fatalf("unexpected cookie %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	if again := store.Ensure(rec, req); again != id {
		t.Fatalf("expected existing id %q, got %q", id, again)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("existing session must not reissue the cookie")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()
	first, second := uuid.NewString(), uuid.NewString()

	store.Put(first, State{Selected: "Mẫu 7: Tờ trình", Analysis: &model.Analysis{Label: "Mẫu 7: Tờ trình"}})
	store.Put(second, State{Selected: "Mẫu 8: Biên bản"})

	a, ok := store.Get(first)
	if !ok || a.Selected != "Mẫu 7: Tờ trình" || a.Analysis == nil {
		t.Fatalf("unexpected first session %+v", a)
	}
	b, ok := store.Get(second)
	if !ok || b.Selected != "Mẫu 8: Biên bản" || b.Analysis != nil {
		t.Fatalf("unexpected second session %+v", b)
	}

	store.Delete(first)
	if _, ok := store.Get(first); ok {
		t.Fatalf("deleted session still present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected one live session, got %d", store.Len())
	}
}

func TestLoadRejectsForeignCookies(t *testing.T) {
	store := NewStore()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "not-a-uuid"})
	if _, _, ok := store.Load(req); ok {
		t.Fatalf("malformed id must not load")
	}

	id := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: id})
	gotID, _, ok := store.Load(req)
	if ok || gotID != id {
		t.Fatalf("unknown session should report id without state, got %q %v", gotID, ok)
	}

	store.Put(id, State{Selected: "x"})
	if _, state, ok := store.Load(req); !ok || state.Selected != "x" {
		t.Fatalf("expected stored state, got %+v %v", state, ok)
	}
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(WithSize(2))
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	for _, id := range ids {
		store.Put(id, State{Selected: id})
	}
	if _, ok := store.Get(ids[0]); ok {
		t.Fatalf("oldest session should be evicted")
	}
	if store.Len() != 2 {
		t.Fatalf("expected capped size, got %d", store.Len())
	}
}

func TestStoreExpiresSessions(t *testing.T) {
	store := NewStore(WithTTL(20 * time.Millisecond))
	id := uuid.NewString()
	store.Put(id, State{Selected: "x"})
	time.Sleep(60 * time.Millisecond)
	if _, ok := store.Get(id); ok {
		t.Fatalf("expired session still present")
	}
}
