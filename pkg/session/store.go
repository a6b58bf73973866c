package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/render"
)

const (
	DefaultCookieName = "docform_session"
	DefaultTTL        = 30 * time.Minute
	DefaultSize       = 1024
)

// State is the per-session selection. Analysis is nil until a type is chosen.
type State struct {
	Selected string
	Analysis *model.Analysis
	// Values keeps the last submission so a failed generate can repopulate
	// the form.
	Values map[string]string
	// Flash holds alerts shown once on the next dashboard render.
	Flash []render.Alert
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long an idle session survives.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSize caps the number of live sessions. The least recently used session
// is evicted first.
func WithSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithCookieName changes the session cookie name.
func WithCookieName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.cookieName = name
		}
	}
}

// WithSecureCookie marks the cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(s *Store) {
		s.secure = secure
	}
}

// Store maps session IDs to State. It is safe for concurrent use.
type Store struct {
	cache      *expirable.LRU[string, State]
	ttl        time.Duration
	size       int
	cookieName string
	secure     bool
}

// NewStore builds an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{ttl: DefaultTTL, size: DefaultSize, cookieName: DefaultCookieName}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.cache = expirable.NewLRU[string, State](s.size, nil, s.ttl)
	return s
}

// CookieName reports the cookie carrying the session ID.
func (s *Store) CookieName() string {
	return s.cookieName
}

// Get returns the state stored under id.
func (s *Store) Get(id string) (State, bool) {
	if id == "" {
		return State{}, false
	}
	return s.cache.Get(id)
}

// Put stores state under id, refreshing its expiry.
func (s *Store) Put(id string, state State) {
	if id == "" {
		return
	}
	s.cache.Add(id, state)
}

// Delete forgets id.
func (s *Store) Delete(id string) {
	s.cache.Remove(id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}

// ID returns the session ID carried by r, if it is well formed.
func (s *Store) ID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Load returns the session ID and state for r. ok is false when the request
// carries no session or the session expired; id is still returned in the
// latter case.
func (s *Store) Load(r *http.Request) (id string, state State, ok bool) {
	id, found := s.ID(r)
	if !found {
		return "", State{}, false
	}
	state, ok = s.Get(id)
	return id, state, ok
}

// Ensure returns the request's session ID, issuing a new one and setting the
// cookie on w when the request has none.
func (s *Store) Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := s.ID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
