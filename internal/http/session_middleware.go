package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
)

type sessionContextKey struct{}

type contextSetter interface {
	SetContext(context.Context)
}

// withSession resolves the session cookie into the request context. Anonymous
// requests pass through untouched; a cookie that fails verification is treated
// the same as no cookie at all. A session store failure is not an auth
// decision and surfaces as a 500.
func (r *Router) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := auth.WithRequestMeta(req.Context(), auth.RequestMeta{
			IPAddress: clientIP(req),
			UserAgent: req.UserAgent(),
		})
		if cookie, err := req.Cookie(r.cookieName); err == nil && cookie.Value != "" {
			sess, err := r.auth.VerifySession(ctx, cookie.Value)
			switch {
			case err == nil:
				ctx = context.WithValue(ctx, sessionContextKey{}, sess)
			case errors.Is(err, auth.ErrNotAuthenticated):
				// stale or forged cookie, request proceeds anonymous
			default:
				r.logger.Error("session lookup failed", "error", err, "path", req.URL.Path)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// requireSession rejects anonymous requests before the handler runs.
func (r *Router) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if sessionFromContext(req.Context()).Anonymous() {
			writeMessage(w, http.StatusUnauthorized, auth.ErrNotAuthenticated.Error())
			return
		}
		next(w, req)
	}
}

func sessionFromContext(ctx context.Context) domain.SessionContext {
	sess, _ := ctx.Value(sessionContextKey{}).(domain.SessionContext)
	return sess
}

func (r *Router) setSessionCookie(w http.ResponseWriter, issued *auth.IssuedSession) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cookieName,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		MaxAge:   int(time.Until(issued.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   r.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (r *Router) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
