package httpserver

import (
	"context"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"resort_booking/internal/domain"
)

const (
	keyLoggedIn = "logged_in"
	keyUserID   = "user_id"
	keyRole     = "role"
)

type SessionOptions struct {
	Name   string
	Secret string
	Secure bool
}

// Sessions keeps the portal login in a signed cookie.
type Sessions struct {
	store sessions.Store
	name  string
}

func NewSessions(o SessionOptions) *Sessions {
	secret := []byte(o.Secret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	st := sessions.NewCookieStore(secret)
	st.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: st, name: o.Name}
}

// Establish marks the caller as logged in as userID with role.
func (s *Sessions) Establish(w http.ResponseWriter, r *http.Request, userID int64, role domain.Role) error {
	sess, _ := s.store.Get(r, s.name) // a bad cookie still yields a fresh session
	sess.Values[keyLoggedIn] = true
	sess.Values[keyUserID] = userID
	sess.Values[keyRole] = string(role)
	return sess.Save(r, w)
}

func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	delete(sess.Values, keyLoggedIn)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyRole)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// UserID returns the logged-in user for role, if any.
func (s *Sessions) UserID(r *http.Request, role domain.Role) (int64, bool) {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return 0, false
	}
	if ok, _ := sess.Values[keyLoggedIn].(bool); !ok {
		return 0, false
	}
	if got, _ := sess.Values[keyRole].(string); got != string(role) {
		return 0, false
	}
	id, ok := sess.Values[keyUserID].(int64)
	return id, ok && id > 0
}

type userCtxKey struct{}

// Require rejects requests without a session for role and stores the user id in the context.
func (s *Sessions) Require(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := s.UserID(r, role)
			if !ok {
				log.Debug().Str("path", r.URL.Path).Msg("no session")
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, id)))
		})
	}
}

func userIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userCtxKey{}).(int64)
	return id, ok
}
