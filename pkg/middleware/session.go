package middleware

import (
	"context"
	"net/http"
	"strings"

	"cuecafe/internal/session"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/httpx"
	"cuecafe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const SessionKey contextKey = "session"

// RequireSession resolves the bearer token into a session record and rejects
// the request when none exists. Handlers behind it can rely on
// SessionFromContext returning a non-nil session.
func RequireSession(sessions session.Store, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := BearerToken(r)
		if token == "" {
			_ = httpx.WriteError(w, apperrors.NotAuthenticated())
			return
		}

		sess, ok := sessions.Get(token)
		if !ok {
			_ = httpx.WriteError(w, apperrors.NotAuthenticated())
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, &sess)
		next(w, r.WithContext(ctx), ps)
	}
}

func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func SessionFromContext(ctx context.Context) *model.Session {
	if v := ctx.Value(SessionKey); v != nil {
		if sess, ok := v.(*model.Session); ok {
			return sess
		}
	}
	return nil
}
