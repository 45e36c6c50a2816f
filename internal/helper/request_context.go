package helper

import (
	"AfrilanceWeb/internal/model"
	"context"
)

type requestContextKey string

const sessionContextKey requestContextKey = "session"

func WithSession(ctx context.Context, session *model.Session) context.Context {
	if session == nil {
		return ctx
	}

	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext is the only accessor for the signed-in session.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	if ctx == nil {
		return nil, false
	}

	session, ok := ctx.Value(sessionContextKey).(*model.Session)
	return session, ok && session != nil
}
