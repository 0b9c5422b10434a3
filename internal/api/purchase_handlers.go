package api

import (
	"fmt"
	"net/http"
	"strconv"

	"ms-storefront/internal/models"
	"ms-storefront/internal/purchase"
)

type openPurchaseRequest struct {
	EventID string `json:"event_id"`
}

type quantityRequest struct {
	Delta    *int `json:"delta"`
	Quantity *int `json:"quantity"`
}

func (h *Handler) currentFlow(r *http.Request) (*purchase.Flow, error) {
	f := sessionFrom(r).Flow()
	if f == nil {
		return nil, errNoFlow
	}
	return f, nil
}

// respondFlow answers with the flow view. A running settlement is reported as 202;
// with ?wait=true the handler blocks until it finishes.
func (h *Handler) respondFlow(w http.ResponseWriter, r *http.Request, f *purchase.Flow, view purchase.View, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}

	if view.Processing {
		if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
			if err := f.Wait(r.Context()); err != nil {
				h.writeError(w, err)
				return
			}
			view = f.View()
		}
	}

	status := http.StatusOK
	if view.Processing {
		status = http.StatusAccepted
	}
	h.ok(w, status, string(view.Step), view)
}

// OpenPurchase starts a ticket purchase for an event of the session catalog.
func (h *Handler) OpenPurchase(w http.ResponseWriter, r *http.Request) {
	var req openPurchaseRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	sess := sessionFrom(r)
	event, err := sess.Catalog.Get(r.Context(), req.EventID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	f, err := sess.OpenFlow(func() (*purchase.Flow, error) {
		return h.Purchases.Open(sess.ID, *event)
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.ok(w, http.StatusCreated, "Purchase opened", f.View())
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondFlow(w, r, f, f.View(), nil)
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req quantityRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	var view purchase.View
	switch {
	case req.Quantity != nil:
		view, err = f.SetQuantity(*req.Quantity)
	case req.Delta != nil:
		view, err = f.AdjustQuantity(*req.Delta)
	default:
		err = fmt.Errorf("%w: quantity or delta is required", errBadRequest)
	}
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var info models.CustomerInfo
	if err := h.decode(r, &info); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := f.UpdateCustomer(info)
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) UpdateBilling(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var info models.BillingInfo
	if err := h.decode(r, &info); err != nil {
		h.writeError(w, err)
		return
	}
	view, err := f.UpdateBilling(info)
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) NextPurchaseStep(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := f.Next(r.Context())
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) PreviousPurchaseStep(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := f.Back()
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := f.Pay(r.Context())
	h.respondFlow(w, r, f, view, err)
}

func (h *Handler) ClosePurchase(w http.ResponseWriter, r *http.Request) {
	if err := sessionFrom(r).CloseFlow(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTicket returns the QR ticket PNG of the confirmed purchase.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	f, err := h.currentFlow(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if view := f.View(); view.Processing {
		h.ok(w, http.StatusAccepted, "Purchase is being processed", view)
		return
	}

	png, err := f.TicketPNG()
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="ticket.png"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to write ticket image: %v", err))
	}
}
