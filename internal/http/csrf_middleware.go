package httpx

import (
	"net/http"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/crypto"
)

const (
	csrfHeader     = "X-CSRF-Token"
	csrfCookieName = "travel_csrf"
)

// csrfToken derives the double-submit token for a session. It is an HMAC over
// the session's stored token hash, so it needs no server-side state and dies
// with the session.
func (r *Router) csrfToken(sess domain.SessionContext) string {
	return crypto.SignMessage(r.appSecret, sess.TokenHash)
}

// withCSRF guards cookie-authenticated state changes: any request that arrived
// with a valid session must echo the matching token in X-CSRF-Token. Anonymous
// requests pass, their handlers reject them on auth grounds instead.
func (r *Router) withCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, req)
			return
		}
		sess := sessionFromContext(req.Context())
		if !sess.Anonymous() {
			tag := req.Header.Get(csrfHeader)
			if tag == "" || !crypto.VerifySignature(r.appSecret, sess.TokenHash, tag) {
				writeMessage(w, http.StatusForbidden, "Invalid CSRF token")
				return
			}
		}
		next(w, req)
	}
}

// handleCSRF issues the token for the caller's session, mirrored into a
// readable cookie for browser clients.
func (r *Router) handleCSRF(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	sess := sessionFromContext(req.Context())
	token := r.csrfToken(sess)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		Secure:   r.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}
