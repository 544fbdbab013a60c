package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/water-iq/monitor/internal/auth"
	"github.com/water-iq/monitor/internal/journal"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges fixture credentials for a bearer token.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid JSON payload")
		return
	}
	session, err := a.auth.Login(payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if err != nil {
		a.logger.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "login_failed", "Login failed")
		return
	}
	a.logger.Info("user signed in", "user", session.User.ID, "role", session.User.Role)
	writeJSON(w, http.StatusOK, session)
}

// Activity lists journaled operator actions, newest first.
func (a *API) Activity(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return
	}
	if limit == 0 {
		limit = journal.DefaultListLimit
	}
	items, err := a.activity.List(r.Context(), limit)
	if err != nil {
		a.logger.Error("list activity failed", "err", err)
		writeError(w, http.StatusInternalServerError, "list_failed", "Failed to list activity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Refresh queues an immediate sampler pass.
func (a *API) Refresh(w http.ResponseWriter, _ *http.Request) {
	a.sampler.TriggerRefresh()
	writeAccepted(w)
}
