package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aeroclub-erp/aeroclub-erp/internal/platform/httpx"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
)

// Handler exposes the balance engine over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ledger read endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balances", h.listBalances)
	r.Get("/subledgers/{category}", h.showSubLedger)
	r.Get("/accounts/{accountID}/statement", h.showStatement)
	r.Get("/summary", h.showSummary)
}

func periodToken(r *http.Request) PeriodToken {
	return PeriodToken(r.URL.Query().Get("period"))
}

func (h *Handler) listBalances(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	balances, err := h.service.AccountBalances(r.Context(), clubID, periodToken(r))
	if err != nil {
		h.logger.Error("list balances", slog.Any("error", err), slog.Int64("club_id", clubID))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"balances": balances})
}

func (h *Handler) showSubLedger(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	category, err := ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Unknown Category", err.Error())
		return
	}
	entries, err := h.service.SubLedger(r.Context(), clubID, category, periodToken(r))
	if err != nil {
		h.logger.Error("sub-ledger", slog.Any("error", err), slog.String("category", string(category)))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"category": category, "entries": entries})
}

func (h *Handler) showStatement(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account", "account id must be numeric")
		return
	}
	account, txs, err := h.service.AccountStatement(r.Context(), clubID, accountID, periodToken(r))
	if err != nil {
		h.logger.Error("account statement", slog.Any("error", err), slog.Int64("account_id", accountID))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"account": account, "transactions": txs})
}

func (h *Handler) showSummary(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	totals, err := h.service.PortfolioSummary(r.Context(), clubID, periodToken(r))
	if err != nil {
		h.logger.Error("portfolio summary", slog.Any("error", err), slog.Int64("club_id", clubID))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}
