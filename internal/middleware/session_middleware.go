package middleware

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/constant"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"context"
	"net/http"
	"strings"
)

const SessionHeader = "X-Session-ID"

type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*model.Session, error)
}

type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
}

func NewSessionMiddleware(resolver SessionResolver, cfg *config.AppConfig) *SessionMiddleware {
	return &SessionMiddleware{
		resolver:   resolver,
		cookieName: cfg.SessionCookieName,
	}
}

func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := m.sessionID(r)
		if sessionID == "" {
			helper.WriteError(w, helper.NewUnauthorizedError(""))
			return
		}

		session, err := m.resolver.Resolve(r.Context(), sessionID)
		if err != nil || session == nil {
			helper.WriteError(w, helper.NewUnauthorizedError("Session expired, please sign in again"))
			return
		}

		next.ServeHTTP(w, r.WithContext(helper.WithSession(r.Context(), session)))
	})
}

func (m *SessionMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := helper.SessionFromContext(r.Context())
		if session.Role != constant.RoleAdmin {
			helper.WriteError(w, helper.NewForbiddenError(""))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (m *SessionMiddleware) sessionID(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get(SessionHeader)); header != "" {
		return header
	}
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
