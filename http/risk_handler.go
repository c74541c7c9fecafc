package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"guarantor-risk/service"
)

type RiskHandler struct {
	service      *service.RiskService
	logger       *slog.Logger
	maxBodyBytes int64
}

func NewRiskHandler(service *service.RiskService, logger *slog.Logger, maxBodyBytes int64) *RiskHandler {
	return &RiskHandler{
		service:      service,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Assess handles POST /risk/assess.
func (h *RiskHandler) Assess(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.service.Assess(r.Context(), req.toInput(), h.model(r, req))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeJSON(w, r, result)
}

// WorstCase handles POST /risk/worst-case.
func (h *RiskHandler) WorstCase(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.service.WorstCase(r.Context(), req.toInput(), h.model(r, req))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeJSON(w, r, result)
}

func (h *RiskHandler) decode(w http.ResponseWriter, r *http.Request) (assessRequest, bool) {
	var req assessRequest

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.logger.DebugContext(r.Context(), "invalid request body",
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return req, false
		}
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}

	return req, true
}

func (h *RiskHandler) model(r *http.Request, req assessRequest) string {
	if req.Model != "" {
		return req.Model
	}
	return r.URL.Query().Get("model")
}

func (h *RiskHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrUnknownModel) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.ErrorContext(r.Context(), "risk calculation failed",
		"request_id", RequestIDFrom(r.Context()),
		"error", err,
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON encodes into a buffer first so a failure can still send a 500.
func (h *RiskHandler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "error writing response", "error", err)
	}
}
