package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"doppel/internal/platform/middleware"
	"doppel/internal/twin/models"
	dErrors "doppel/pkg/domain-errors"
	"doppel/pkg/platform/httputil"
)

// Service defines the lookup operation the handler fronts.
type Service interface {
	Lookup(ctx context.Context, rawZip string) (*models.CompositeResult, error)
}

// Handler handles twin lookup endpoints.
type Handler struct {
	logger *slog.Logger
	twins  Service
}

func New(twins Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		twins:  twins,
	}
}

// Register registers the lookup routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/find-twin", h.handleFindTwin)
}

// FindTwinRequest is the lookup request body.
type FindTwinRequest struct {
	ZipCode string `json:"zip_code"`
}

// handleFindTwin runs one doppelganger lookup.
func (h *Handler) handleFindTwin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req FindTwinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid find-twin request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ZipCode == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "zip_code is required"))
		return
	}

	result, err := h.twins.Lookup(ctx, req.ZipCode)
	if err != nil {
		switch {
		case dErrors.Is(err, dErrors.CodeValidation), dErrors.Is(err, dErrors.CodeNotFound):
			h.logger.WarnContext(ctx, "lookup rejected",
				"request_id", requestID,
				"zip", req.ZipCode,
				"error", err.Error(),
			)
		default:
			h.logger.ErrorContext(ctx, "lookup failed",
				"request_id", requestID,
				"zip", req.ZipCode,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
