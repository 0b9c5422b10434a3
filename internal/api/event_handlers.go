package api

import (
	"fmt"
	"net/http"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/highlights"
	"ms-storefront/internal/metrics"
	"ms-storefront/internal/outreach"
	"ms-storefront/internal/session"
	"ms-storefront/internal/sse"
	"ms-storefront/internal/submission"

	"github.com/go-chi/chi/v5"
)

// ListEvents serves the events page listing: ?q=&category=&sort=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	all, err := sessionFrom(r).Catalog.All(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	filter := filterFrom(r)
	if filter.Sort == "" {
		filter.Sort = catalog.DefaultSort
	}
	listed := catalog.Apply(all, filter)
	h.ok(w, http.StatusOK, fmt.Sprintf("%d events", len(listed)), listed)
}

// SubmitEvent adds a user's event to the session catalog. Anonymous sessions are refused.
func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	user := sess.User()
	if user == nil {
		h.writeError(w, errLoginRequired)
		return
	}

	var draft submission.Draft
	if err := h.decode(r, &draft); err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.Submissions.Submit(r.Context(), sess.Catalog, user, draft)
	metrics.RecordSubmission(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusCreated, "Event submitted successfully", created)
}

// GetEvent renders the detail screen of one event. Unknown ids answer 404 with the recovery page.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Screens.Detail(r.Context(), sessionFrom(r), chi.URLParam(r, "eventId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !detail.Found {
		h.ok(w, http.StatusNotFound, "Event Not Found", detail)
		return
	}
	h.ok(w, http.StatusOK, "Event retrieved", detail)
}

func (h *Handler) GetShareLinks(w http.ResponseWriter, r *http.Request) {
	event, err := sessionFrom(r).Catalog.Get(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, "Share links", outreach.ShareLinks(h.Screens.Origin, *event))
}

func (h *Handler) ToggleRSVP(w http.ResponseWriter, r *http.Request) {
	rsvp, err := session.ToggleRSVP(r.Context(), sessionFrom(r), chi.URLParam(r, "eventId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, rsvp.Label, rsvp)
}

func (h *Handler) GetPurchaseSummary(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	eventID := chi.URLParam(r, "eventId")
	if _, err := sess.Catalog.Get(r.Context(), eventID); err != nil {
		h.writeError(w, err)
		return
	}

	summary, err := h.Ledger.Summarize(r.Context(), sess.ID, eventID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, "Purchase summary", summary)
}

// StreamConfirmations sends every confirmed purchase of the event over SSE until the client leaves.
func (h *Handler) StreamConfirmations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	eventID := chi.URLParam(r, "eventId")
	if _, err := sess.Catalog.Get(r.Context(), eventID); err != nil {
		h.writeError(w, err)
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	confirmations := h.Confirmations.Subscribe(ctx, sess.ID, eventID)
	h.Logger.Info("SSE", fmt.Sprintf("Confirmation stream opened: session=%s event=%s", sess.ID, eventID))

	if err := stream.Send("connected", map[string]interface{}{
		"message":   "Connected to purchase confirmations",
		"eventId":   eventID,
		"timestamp": time.Now().Unix(),
	}); err != nil {
		return
	}

	for {
		select {
		case c, open := <-confirmations:
			if !open {
				return
			}
			if err := stream.Send("confirmation", c); err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to send confirmation: %v", err))
				return
			}
		case <-ctx.Done():
			h.Logger.Info("SSE", fmt.Sprintf("Confirmation stream closed: session=%s event=%s", sess.ID, eventID))
			return
		}
	}
}

// StreamHighlights rotates the upcoming events over SSE. The rotation lives as long as the request.
func (h *Handler) StreamHighlights(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	upcoming, err := sess.Catalog.Upcoming(r.Context(), h.Screens.Now(), catalog.UpcomingLimit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	stream, err := sse.NewStream(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rotator := highlights.NewRotator(upcoming)
	sess.SetHighlights(rotator)
	defer sess.ClearHighlights(rotator)

	if err := highlights.Stream(r.Context(), rotator, h.HighlightInterval, stream, h.Logger); err != nil {
		h.Logger.Error("SSE", fmt.Sprintf("Highlight stream failed: %v", err))
	}
}

func (h *Handler) NextHighlight(w http.ResponseWriter, r *http.Request) {
	h.moveHighlight(w, r, (*highlights.Rotator).Next)
}

func (h *Handler) PreviousHighlight(w http.ResponseWriter, r *http.Request) {
	h.moveHighlight(w, r, (*highlights.Rotator).Previous)
}

func (h *Handler) moveHighlight(w http.ResponseWriter, r *http.Request, move func(*highlights.Rotator) (highlights.Highlight, bool)) {
	rotator := sessionFrom(r).Highlights()
	if rotator == nil {
		h.ok(w, http.StatusNotFound, "No highlight stream is open", nil)
		return
	}
	current, ok := move(rotator)
	if !ok {
		h.ok(w, http.StatusOK, "No upcoming events", nil)
		return
	}
	h.ok(w, http.StatusOK, "Highlight moved", current)
}

type verifyRequest struct {
	Code string `json:"code"`
}

// VerifyTicket decodes the code printed in a ticket's QR image.
func (h *Handler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	c, err := h.QR.Decode(req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusOK, "Ticket is valid", c)
}
