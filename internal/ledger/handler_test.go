package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
	_ "github.com/aeroclub-erp/aeroclub-erp/testing"
)

func newTestRouter(t *testing.T, repo RepositoryPort) http.Handler {
	t.Helper()
	svc := newTestService(t, repo, nil)
	handler := NewHandler(slog.Default(), svc)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithClub(req.Context(), 7)))
		})
	})
	r.Route("/", handler.MountRoutes)
	return r
}

func TestListBalancesEndpoint(t *testing.T) {
	repo := &mockRepo{
		accounts: testAccounts(),
		lines:    []JournalEntryLine{{AccountID: 1, Debit: 100}},
	}
	router := newTestRouter(t, repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/balances?period=currentYear", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var payload struct {
		Balances []AccountBalance `json:"balances"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(payload.Balances) != 3 {
		t.Fatalf("got %d balances", len(payload.Balances))
	}
	if payload.Balances[0].Balance != 100 {
		t.Fatalf("balance = %v", payload.Balances[0].Balance)
	}
}

func TestSubLedgerEndpointRejectsUnknownCategory(t *testing.T) {
	router := newTestRouter(t, &mockRepo{accounts: testAccounts()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/subledgers/banana", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestStatementEndpointNotFound(t *testing.T) {
	router := newTestRouter(t, &mockRepo{accounts: testAccounts()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/accounts/99/statement", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
}
