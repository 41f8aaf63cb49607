package app

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger/journals"
	"github.com/aeroclub-erp/aeroclub-erp/internal/masterdata"
	"github.com/aeroclub-erp/aeroclub-erp/internal/observability"
	"github.com/aeroclub-erp/aeroclub-erp/internal/platform/httpx"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
	"github.com/aeroclub-erp/aeroclub-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	LedgerHandler     *ledger.Handler
	JournalsHandler   *journals.Handler
	MasterDataHandler *masterdata.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with Aeroclub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/clubs/{clubID}", func(r chi.Router) {
		r.Use(clubScope)
		if params.LedgerHandler != nil {
			r.Route("/ledger", params.LedgerHandler.MountRoutes)
		}
		if params.JournalsHandler != nil {
			r.Route("/journals", params.JournalsHandler.MountRoutes)
		}
		if params.MasterDataHandler != nil {
			r.Route("/masterdata", params.MasterDataHandler.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

// clubScope extracts the club id from the route and stores it on the request
// context. Every tenant-scoped handler below reads it from there.
func clubScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clubID, err := strconv.ParseInt(chi.URLParam(r, "clubID"), 10, 64)
		if err != nil || clubID <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Club", shared.UserSafeMessage(shared.ErrClubScopeMissing))
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithClub(r.Context(), clubID)))
	})
}
