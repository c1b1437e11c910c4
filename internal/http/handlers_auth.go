package httpx

import (
	"net/http"

	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
)

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload auth.RegisterInput
	if err := decodeJSON(req, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	profile, issued, err := r.auth.Register(req.Context(), payload)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	r.setSessionCookie(w, issued)
	writeJSON(w, http.StatusCreated, profile)
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(req, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	profile, issued, err := r.auth.Login(req.Context(), payload.Username, payload.Password)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	r.setSessionCookie(w, issued)
	writeJSON(w, http.StatusOK, profile)
}

// handleLogout succeeds whether or not a session arrived; repeating it is
// harmless.
func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	sess := sessionFromContext(req.Context())
	if err := r.auth.Logout(req.Context(), sess); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	r.clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// handleLogoutAll drops every session the user holds, on every device.
func (r *Router) handleLogoutAll(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	sess := sessionFromContext(req.Context())
	if _, err := r.auth.LogoutAll(req.Context(), sess); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	r.clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out of all sessions")
}

func (r *Router) handleUser(w http.ResponseWriter, req *http.Request) {
	sess := sessionFromContext(req.Context())
	switch req.Method {
	case http.MethodGet:
		profile, err := r.auth.CurrentUser(req.Context(), sess)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPut:
		var payload auth.UpdateProfileInput
		if err := decodeJSON(req, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		profile, err := r.auth.UpdateProfile(req.Context(), sess, payload)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeJSON(req, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	sess := sessionFromContext(req.Context())
	if err := r.auth.ChangePassword(req.Context(), sess, payload.CurrentPassword, payload.NewPassword); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password changed successfully")
}
