package journals

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
	"github.com/aeroclub-erp/aeroclub-erp/internal/platform/httpx"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
)

// Handler manages journal entry endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers journal entry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/entries", h.listEntries)
	r.Post("/entries", h.postEntry)
	r.Post("/entries/{entryID}/void", h.voidEntry)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	entries, err := h.service.List(r.Context(), clubID)
	if err != nil {
		h.logger.Error("list entries", slog.Any("error", err), slog.Int64("club_id", clubID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) postEntry(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	var req postEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input, err := req.toPostingInput(clubID, 0)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	entry, err := h.service.PostEntry(r.Context(), input)
	if err != nil {
		h.respondError(w, err, "post entry")
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) voidEntry(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Entry", "entry id must be numeric")
		return
	}
	var req voidEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	entry, err := h.service.VoidEntry(r.Context(), VoidInput{
		ClubID:  clubID,
		EntryID: entryID,
		Reason:  req.Reason,
	})
	if err != nil {
		h.respondError(w, err, "void entry")
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, ErrUnbalanced), errors.Is(err, ErrTooFewLines), errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Posting Rejected", err.Error())
	case errors.Is(err, ErrSourceConflict):
		httpx.Problem(w, http.StatusConflict, "Duplicate Source", err.Error())
	case errors.Is(err, ledger.ErrEntryNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(action, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
