package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ms-storefront/internal/auth"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/outreach"
	"ms-storefront/internal/purchase"
	purchasedb "ms-storefront/internal/purchase/db"
	"ms-storefront/internal/purchase/qr"
	"ms-storefront/internal/session"
	"ms-storefront/internal/sse"
	"ms-storefront/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Ledger is the purchase history read by the summary endpoint.
type Ledger interface {
	Summarize(ctx context.Context, sessionID, eventID string) (purchasedb.Summary, error)
}

type Handler struct {
	Sessions          *session.Store
	Screens           *session.Resolver
	Tokens            *auth.TokenIssuer
	Auth              *auth.Authenticator
	Submissions       *submission.Service
	Purchases         *purchase.Engine
	Outreach          *outreach.Service
	Ledger            Ledger
	Confirmations     *sse.ConfirmationEmitter
	QR                *qr.QRGenerator
	HighlightInterval time.Duration
	Logger            *logger.Logger
}

type ctxKey string

const sessionKey ctxKey = "session"

// RegisterRoutes mounts the public and the session-scoped routes under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)
		r.Get("/categories", h.ListCategories)
		r.Post("/tickets/verify", h.VerifyTicket)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.Tokens))
			r.Use(h.loadSession)

			r.Delete("/sessions", h.EndSession)
			r.Get("/screen", h.GetScreen)
			r.Post("/navigate", h.Navigate)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", h.Login)
				r.Post("/signup", h.Signup)
				r.Post("/logout", h.Logout)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.ListEvents)
				r.Post("/", h.SubmitEvent)
				r.Route("/{eventId}", func(r chi.Router) {
					r.Get("/", h.GetEvent)
					r.Get("/share", h.GetShareLinks)
					r.Post("/rsvp", h.ToggleRSVP)
					r.Get("/confirmations/stream", h.StreamConfirmations)
					r.Get("/purchases/summary", h.GetPurchaseSummary)
				})
			})

			r.Route("/highlights", func(r chi.Router) {
				r.Get("/stream", h.StreamHighlights)
				r.Post("/next", h.NextHighlight)
				r.Post("/previous", h.PreviousHighlight)
			})

			r.Route("/purchase", func(r chi.Router) {
				r.Post("/", h.OpenPurchase)
				r.Get("/", h.GetPurchase)
				r.Post("/quantity", h.UpdateQuantity)
				r.Put("/customer", h.UpdateCustomer)
				r.Put("/billing", h.UpdateBilling)
				r.Post("/next", h.NextPurchaseStep)
				r.Post("/back", h.PreviousPurchaseStep)
				r.Post("/pay", h.Pay)
				r.Post("/close", h.ClosePurchase)
				r.Get("/ticket.png", h.GetTicket)
			})

			r.Post("/newsletter", h.Subscribe)
			r.Post("/contact", h.Contact)
		})
	})
}

// NewRouter builds the storefront router with request logging.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, fmt.Sprintf("%d", ww.Status()), time.Since(start).String())
	})
}

// loadSession resolves the session named by the token. Unknown or expired sessions are unauthorized.
func (h *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Get(auth.SessionID(r.Context()))
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: %v", errSessionRequired, err))
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (h *Handler) ok(w http.ResponseWriter, status int, message string, data interface{}) {
	if err := writeJSON(w, status, message, data); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode response: %v", err))
	}
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, "Categories retrieved", models.Categories())
}
