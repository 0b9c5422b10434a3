package api

import (
	"fmt"
	"net/http"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/metrics"
	"ms-storefront/internal/models"
	"ms-storefront/internal/navigation"
)

type sessionResponse struct {
	SessionID  string           `json:"sessionId"`
	Token      string           `json:"token"`
	Navigation navigation.State `json:"navigation"`
}

// CreateSession opens a browser session with its own seeded catalog and returns its token.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Create(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	token, err := h.Tokens.Issue(sess.ID, time.Now())
	if err != nil {
		h.writeError(w, fmt.Errorf("issue session token: %w", err))
		return
	}

	h.ok(w, http.StatusCreated, "Session created", sessionResponse{
		SessionID:  sess.ID,
		Token:      token,
		Navigation: sess.Navigation(),
	})
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(r.Context(), sessionFrom(r).ID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFrom(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     catalog.SortKey(q.Get("sort")),
	}
}

// GetScreen resolves what the session's current page shows.
func (h *Handler) GetScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := h.Screens.Screen(r.Context(), sessionFrom(r), filterFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, "Screen resolved", screen)
}

type navigateRequest struct {
	Page    *navigation.Page `json:"page"`
	EventID string           `json:"event_id"`
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Page == nil {
		h.writeError(w, fmt.Errorf("%w: page is required", errBadRequest))
		return
	}

	state, err := sessionFrom(r).Navigate(*req.Page, req.EventID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, "Navigated", state)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type authResponse struct {
	User       models.User      `json:"user"`
	Navigation navigation.State `json:"navigation"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	metrics.RecordAuth("login", err)
	if err != nil {
		h.writeError(w, err)
		return
	}

	state := sessionFrom(r).LoggedIn(user)
	h.Logger.LogSession("LOGIN", sessionFrom(r).ID, user.Email)
	h.ok(w, http.StatusOK, "Logged in", authResponse{User: user, Navigation: state})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.Auth.Signup(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	metrics.RecordAuth("signup", err)
	if err != nil {
		h.writeError(w, err)
		return
	}

	state := sessionFrom(r).LoggedIn(user)
	h.Logger.LogSession("SIGNUP", sessionFrom(r).ID, user.Email)
	h.ok(w, http.StatusCreated, "Account created", authResponse{User: user, Navigation: state})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r).LoggedOut()
	h.ok(w, http.StatusOK, "Logged out", state)
}
