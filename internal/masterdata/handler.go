package masterdata

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aeroclub-erp/aeroclub-erp/internal/platform/httpx"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
)

// Handler exposes chart of accounts management over JSON.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers account and detail record routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/accounts", h.listAccounts)
	r.Post("/accounts", h.createAccount)
	r.Get("/accounts/{accountID}", h.showAccount)
	r.Put("/accounts/{accountID}", h.updateAccount)
	r.Get("/accounts/{accountID}/detail/{kind}", h.showDetail)
	r.Put("/accounts/{accountID}/detail/{kind}", h.saveDetail)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	filters := ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  q.Get("q"),
		SortBy:  q.Get("sort"),
		SortDir: q.Get("dir"),
	}
	accounts, total, err := h.service.ListAccounts(r.Context(), clubID, filters)
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err), slog.Int64("club_id", clubID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"accounts":   accounts,
		"pagination": shared.NewPagination(page, limit, total),
	})
}

func (h *Handler) showAccount(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account", "account id must be numeric")
		return
	}
	account, err := h.service.GetAccount(r.Context(), clubID, accountID)
	if err != nil {
		h.respondError(w, err, "show account")
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	var in AccountInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.CreateAccount(r.Context(), clubID, in)
	if err != nil {
		h.respondError(w, err, "create account")
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account", "account id must be numeric")
		return
	}
	var in AccountInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if err := h.validator.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.UpdateAccount(r.Context(), clubID, accountID, in); err != nil {
		h.respondError(w, err, "update account")
		return
	}
	account, err := h.service.GetAccount(r.Context(), clubID, accountID)
	if err != nil {
		h.respondError(w, err, "update account")
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) showDetail(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account", "account id must be numeric")
		return
	}
	var detail any
	switch chi.URLParam(r, "kind") {
	case "customer":
		detail, err = h.service.GetCustomerDetail(r.Context(), clubID, accountID)
	case "supplier":
		detail, err = h.service.GetSupplierDetail(r.Context(), clubID, accountID)
	case "product":
		detail, err = h.service.GetProductDetail(r.Context(), clubID, accountID)
	case "expense":
		detail, err = h.service.GetExpenseDetail(r.Context(), clubID, accountID)
	case "treasury":
		detail, err = h.service.GetTreasuryDetail(r.Context(), clubID, accountID)
	default:
		httpx.Problem(w, http.StatusBadRequest, "Unknown Detail Kind", "kind must be customer, supplier, product, expense or treasury")
		return
	}
	if err != nil {
		h.respondError(w, err, "show detail")
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) saveDetail(w http.ResponseWriter, r *http.Request) {
	clubID := shared.ClubFromContext(r.Context())
	accountID, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account", "account id must be numeric")
		return
	}
	switch chi.URLParam(r, "kind") {
	case "customer":
		var d CustomerDetail
		if err := httpx.DecodeJSON(r, &d); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
			return
		}
		err = h.service.SaveCustomerDetail(r.Context(), clubID, accountID, d)
	case "supplier":
		var d SupplierDetail
		if err := httpx.DecodeJSON(r, &d); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
			return
		}
		err = h.service.SaveSupplierDetail(r.Context(), clubID, accountID, d)
	case "product":
		var d ProductDetail
		if err := httpx.DecodeJSON(r, &d); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
			return
		}
		err = h.service.SaveProductDetail(r.Context(), clubID, accountID, d)
	case "expense":
		var d ExpenseDetail
		if err := httpx.DecodeJSON(r, &d); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
			return
		}
		err = h.service.SaveExpenseDetail(r.Context(), clubID, accountID, d)
	case "treasury":
		var d TreasuryDetail
		if err := httpx.DecodeJSON(r, &d); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
			return
		}
		err = h.service.SaveTreasuryDetail(r.Context(), clubID, accountID, d)
	default:
		httpx.Problem(w, http.StatusBadRequest, "Unknown Detail Kind", "kind must be customer, supplier, product, expense or treasury")
		return
	}
	if err != nil {
		h.respondError(w, err, "save detail")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateCode):
		httpx.Problem(w, http.StatusConflict, "Duplicate Code", err.Error())
	default:
		h.logger.Error(action, slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
