package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/internal/session"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

type sessionCtxKey struct{}

type sessionLoader interface {
	Load(ctx context.Context, token string) (*session.State, error)
	Save(ctx context.Context, state *session.State) error
}

// Session resolves the visitor's session from the cookie, minting a fresh one
// (empty cart, no customer) when none exists. The state is placed on the
// request context; handlers that mutate it save it back through the store.
func Session(store sessionLoader, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var state *session.State
			if cookie, err := r.Cookie(cookieName); err == nil {
				loaded, err := store.Load(ctx, cookie.Value)
				switch {
				case err == nil:
					state = loaded
				case errors.Is(err, session.ErrNotFound):
					// expired or unknown token; fall through to a fresh session
				default:
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load session"))
					return
				}
			}

			if state == nil {
				fresh, err := session.NewState()
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session"))
					return
				}
				if err := store.Save(ctx, fresh); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "save session"))
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    fresh.Token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				state = fresh
			}

			if logg != nil {
				ctx = logg.WithSessionToken(ctx, state.Token)
			}
			ctx = context.WithValue(ctx, sessionCtxKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by the Session middleware.
func SessionFromContext(ctx context.Context) (*session.State, bool) {
	state, ok := ctx.Value(sessionCtxKey{}).(*session.State)
	return state, ok
}

// WithSession injects a session into a context; test helper for handlers.
func WithSession(ctx context.Context, state *session.State) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, state)
}
