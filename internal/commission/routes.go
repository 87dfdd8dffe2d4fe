package commission

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxBody bounds the size of a commission POST.
const maxBody = 64 << 10

// Notifier is told about every accepted request.
type Notifier interface {
	Notify(ctx context.Context, req Request) error
}

// notifyTimeout bounds a notification sent after the response is written.
const notifyTimeout = 15 * time.Second

type routeOptions struct {
	notifier Notifier
	guard    func(http.Handler) http.Handler
}

// RouteOption configures RegisterRoutes.
type RouteOption func(*routeOptions)

// WithNotifier notifies n of every new request.
func WithNotifier(n Notifier) RouteOption {
	return func(o *routeOptions) { o.notifier = n }
}

// WithGuard wraps the endpoints that read requests back, which carry
// visitors' email addresses.
func WithGuard(mw func(http.Handler) http.Handler) RouteOption {
	return func(o *routeOptions) { o.guard = mw }
}

// RegisterRoutes mounts commission endpoints under /api/commissions and the
// pricing card under /api/pricing. Anyone may POST a request.
func RegisterRoutes(r chi.Router, store *Store, opts ...RouteOption) {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.Route("/api/commissions", func(r chi.Router) {
		r.Post("/", handleCreate(store, o.notifier))
		r.Group(func(r chi.Router) {
			if o.guard != nil {
				r.Use(o.guard)
			}
			r.Get("/", handleList(store))
			r.Get("/{id}", handleGet(store))
		})
	})
	r.Get("/api/pricing", handlePricing)
}

func handleCreate(store *Store, notifier Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.ID = ""

		created, err := store.Create(r.Context(), req)
		if err != nil {
			if isValidation(err) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			log.Printf("commission: create: %v", err)
			writeError(w, http.StatusInternalServerError, "could not save request")
			return
		}
		log.Printf("commission: new %s request %s", created.ProjectType, created.ID)
		writeJSON(w, http.StatusCreated, created)

		if notifier != nil {
			go func(req Request) {
				ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
				defer cancel()
				if err := notifier.Notify(ctx, req); err != nil {
					log.Printf("commission: notify %s: %v", req.ID, err)
				}
			}(*created)
		}
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		reqs, err := store.List(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if reqs == nil {
			reqs = []Request{}
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, req)
	}
}

func handlePricing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Pricing())
}

func isValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrEmailInvalid) ||
		errors.Is(err, ErrUnknownProject) ||
		errors.Is(err, ErrMessageTooLong)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
