package api

import (
	"net/http"

	"ms-storefront/internal/outreach"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	sub, err := h.Outreach.Subscribe(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusCreated, outreach.NewsletterThanks, sub)
}

func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg outreach.ContactMessage
	if err := h.decode(r, &msg); err != nil {
		h.writeError(w, err)
		return
	}

	received, err := h.Outreach.Contact(r.Context(), msg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusAccepted, outreach.ContactThanks, received)
}
