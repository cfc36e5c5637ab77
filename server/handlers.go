package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/etnz/investlog"
)

// Handler handles record HTTP requests. The ledger is loaded from the source
// on every request, so that added records are visible right away.
type Handler struct {
	source   investlog.Source
	currency string
	now      func() investlog.Date
	log      zerolog.Logger
	mu       sync.Mutex // serializes appends, new ids depend on the ledger
}

// NewHandler creates a new record handler
func NewHandler(source investlog.Source, currency string, now func() investlog.Date, log zerolog.Logger) *Handler {
	return &Handler{
		source:   source,
		currency: currency,
		now:      now,
		log:      log.With().Str("handler", "records").Logger(),
	}
}

// RegisterRoutes registers all record routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Get("/search", h.HandleSearch)
		r.Get("/options", h.HandleOptions)
		r.Get("/{id}", h.HandleGetRecord)
		r.Post("/", h.HandleAddRecord)
	})
	r.Get("/dashboard", h.HandleDashboard)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "investlog",
	}, zerolog.Nop())
}

// HandleSearch handles GET /api/records/search
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q, err := investlog.QueryParams{
		Term:      params.Get("q"),
		AssetType: params.Get("type"),
		Type:      params.Get("tx"),
		Sector:    params.Get("sector"),
		Preset:    params.Get("preset"),
		From:      params.Get("from"),
		To:        params.Get("to"),
		Min:       params.Get("min"),
		Max:       params.Get("max"),
		SortBy:    params.Get("sort"),
		Order:     params.Get("order"),
	}.Query(h.now(), h.currency)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ledger, ok := h.load(w, r)
	if !ok {
		return
	}
	records, agg := ledger.Search(q)
	h.writeData(w, http.StatusOK, map[string]any{
		"records":        nonNil(records),
		"aggregate":      agg,
		"active_filters": q.ActiveFilters(),
	})
}

// HandleGetRecord handles GET /api/records/{id}
func (h *Handler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}
	ledger, ok := h.load(w, r)
	if !ok {
		return
	}
	rec, found := ledger.Get(id)
	if !found {
		h.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	h.writeData(w, http.StatusOK, rec)
}

// HandleAddRecord handles POST /api/records, the transaction entry form. The
// body is either JSON or a url encoded form.
func (h *Handler) HandleAddRecord(w http.ResponseWriter, r *http.Request) {
	appender, ok := h.source.(investlog.Appender)
	if !ok {
		h.writeError(w, http.StatusMethodNotAllowed, "the record source is read-only")
		return
	}

	var form investlog.Form
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		form = investlog.Form{
			Asset:     r.PostForm.Get("asset"),
			AssetType: r.PostForm.Get("type"),
			Amount:    r.PostForm.Get("amount"),
			Current:   r.PostForm.Get("current"),
			Tx:        r.PostForm.Get("tx"),
			Date:      r.PostForm.Get("date"),
			Sector:    r.PostForm.Get("sector"),
			Notes:     r.PostForm.Get("notes"),
		}
	}
	if err := form.Validate(h.currency); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	ledger, ok := h.load(w, r)
	if !ok {
		return
	}
	rec, err := form.Record(ledger.NextID(), ledger.Currency())
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := appender.Append(r.Context(), rec); err != nil {
		h.log.Error().Err(err).Msg("Failed to add record")
		h.writeError(w, http.StatusInternalServerError, "failed to add record")
		return
	}
	h.log.Info().Int64("id", rec.ID()).Str("asset", rec.Asset()).Msg("Record added")
	h.writeData(w, http.StatusCreated, rec)
}

// HandleDashboard handles GET /api/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.load(w, r)
	if !ok {
		return
	}
	h.writeData(w, http.StatusOK, investlog.NewDashboard(ledger))
}

// HandleOptions handles GET /api/records/options
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.load(w, r)
	if !ok {
		return
	}
	opts := ledger.Options()
	h.writeData(w, http.StatusOK, map[string]any{
		"assetTypes": nonNil(opts.AssetTypes),
		"types":      nonNil(opts.Types),
		"sectors":    nonNil(opts.Sectors),
		"presets":    investlog.Presets,
	})
}

// load reads the ledger, or writes the error response.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*investlog.Ledger, bool) {
	ledger, err := investlog.LoadLedger(r.Context(), h.source, h.currency)
	if err != nil {
		var integrityErr *investlog.DataIntegrityError
		if errors.As(err, &integrityErr) {
			h.log.Error().Err(err).Int64("record", integrityErr.RecordID).Msg("Invalid ledger")
		} else {
			h.log.Error().Err(err).Msg("Failed to load ledger")
		}
		h.writeError(w, http.StatusInternalServerError, "failed to load records")
		return nil, false
	}
	return ledger, true
}

// writeData writes the data envelope used by every endpoint.
func (h *Handler) writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"data": data,
		"metadata": map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}, h.log)
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message}, h.log)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any, log zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
