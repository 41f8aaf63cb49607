package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRepo struct {
	accounts     []Account
	lines        []JournalEntryLine
	transactions []Transaction

	accountsCalls int
	linesCalls    int
	txCalls       int
	lastPeriod    DateRange

	linesErr error
}

func (m *mockRepo) ListAccounts(ctx context.Context, clubID int64) ([]Account, error) {
	m.accountsCalls++
	return m.accounts, nil
}

func (m *mockRepo) GetAccount(ctx context.Context, clubID, accountID int64) (Account, error) {
	for _, a := range m.accounts {
		if a.ID == accountID {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (m *mockRepo) ListLines(ctx context.Context, clubID int64, period DateRange) ([]JournalEntryLine, error) {
	m.linesCalls++
	m.lastPeriod = period
	if m.linesErr != nil {
		return nil, m.linesErr
	}
	return m.lines, nil
}

func (m *mockRepo) ListAccountTransactions(ctx context.Context, clubID, accountID int64, period DateRange) ([]Transaction, error) {
	m.txCalls++
	return m.transactions, nil
}

type mockDetails struct {
	records map[int64]DetailRecord
	calls   int
}

func (m *mockDetails) DetailsByCategory(ctx context.Context, clubID int64, category Category) (map[int64]DetailRecord, error) {
	m.calls++
	return m.records, nil
}

func newTestService(t *testing.T, repo RepositoryPort, details DetailsPort) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(repo, details, NewCache(client, time.Minute))
	svc.WithNow(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

func testAccounts() []Account {
	return []Account{
		{ID: 1, ClubID: 7, Code: "411000", Name: "Members receivable", Type: AccountTypeAsset},
		{ID: 2, ClubID: 7, Code: "401000", Name: "Fuel supplier", Type: AccountTypeLiability, Subtype: "SUPPLIER"},
		{ID: 3, ClubID: 7, Code: "706000", Name: "Flight hours", Type: AccountTypeIncome},
	}
}

func TestAccountBalancesFetchesLinesOnce(t *testing.T) {
	repo := &mockRepo{
		accounts: testAccounts(),
		lines: []JournalEntryLine{
			{AccountID: 1, Debit: 1000},
			{AccountID: 1, Credit: 300},
			{AccountID: 2, Credit: 500},
		},
	}
	svc := newTestService(t, repo, nil)

	balances, err := svc.AccountBalances(context.Background(), 7, PeriodCurrentYear)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.linesCalls != 1 {
		t.Fatalf("lines fetched %d times, want a single bulk query", repo.linesCalls)
	}
	if len(balances) != 3 {
		t.Fatalf("got %d balances, want one per account", len(balances))
	}
	if balances[0].Balance != 700 {
		t.Fatalf("asset balance = %v, want 700", balances[0].Balance)
	}
	if balances[1].Balance != 500 {
		t.Fatalf("supplier balance = %v, want 500", balances[1].Balance)
	}
	if balances[2].Balance != 0 || balances[2].Account.ID != 3 {
		t.Fatalf("account without lines must yield a zero balance, got %+v", balances[2])
	}

	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !repo.lastPeriod.Start.Equal(wantStart) {
		t.Fatalf("period start = %s, want %s", repo.lastPeriod.Start, wantStart)
	}
}

func TestAccountBalancesPropagatesRepositoryError(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &mockRepo{accounts: testAccounts(), linesErr: repoErr}
	svc := newTestService(t, repo, nil)

	_, err := svc.AccountBalances(context.Background(), 7, PeriodAll)
	if !errors.Is(err, repoErr) {
		t.Fatalf("err = %v, want the repository error unchanged", err)
	}
}

func TestSubLedgerFiltersAndJoinsDetails(t *testing.T) {
	repo := &mockRepo{
		accounts: testAccounts(),
		lines:    []JournalEntryLine{{AccountID: 2, Credit: 500}},
	}
	details := &mockDetails{records: map[int64]DetailRecord{
		2: {"contact": "Avgas SARL"},
	}}
	svc := newTestService(t, repo, details)

	entries, err := svc.SubLedger(context.Background(), 7, CategorySupplier, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want only the supplier account", len(entries))
	}
	if entries[0].Account.ID != 2 || entries[0].Balance != 500 {
		t.Fatalf("entry = %+v", entries[0])
	}
	if entries[0].Detail["contact"] != "Avgas SARL" {
		t.Fatalf("detail = %+v", entries[0].Detail)
	}
	if details.calls != 1 {
		t.Fatalf("details fetched %d times, want 1", details.calls)
	}
}

func TestAccountStatement(t *testing.T) {
	repo := &mockRepo{
		accounts: testAccounts(),
		transactions: []Transaction{
			{EntryID: 1, Debit: 100},
			{EntryID: 2, Credit: 250},
		},
	}
	svc := newTestService(t, repo, nil)

	account, txs, err := svc.AccountStatement(context.Background(), 7, 1, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Code != "411000" {
		t.Fatalf("account = %+v", account)
	}
	if txs[1].Running != 250 || txs[0].Running != 150 {
		t.Fatalf("running balances = %v / %v", txs[0].Running, txs[1].Running)
	}
}

func TestAccountStatementUnknownAccount(t *testing.T) {
	svc := newTestService(t, &mockRepo{accounts: testAccounts()}, nil)
	_, _, err := svc.AccountStatement(context.Background(), 7, 99, PeriodAll)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestPortfolioSummaryUsesCacheUntilBump(t *testing.T) {
	repo := &mockRepo{
		accounts: testAccounts(),
		lines: []JournalEntryLine{
			{AccountID: 1, Debit: 1000, Credit: 300},
			{AccountID: 3, Credit: 200},
		},
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, nil, cache)
	svc.WithNow(func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	})

	ctx := context.Background()
	first, err := svc.PortfolioSummary(ctx, 7, PeriodCurrentYear)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PortfolioTotals{Assets: 700, Income: 200}
	if first != want {
		t.Fatalf("totals = %+v, want %+v", first, want)
	}

	second, err := svc.PortfolioSummary(ctx, 7, PeriodCurrentYear)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Fatalf("cached totals diverged: %+v vs %+v", second, first)
	}
	if repo.linesCalls != 1 {
		t.Fatalf("lines fetched %d times, want the cache to serve the second call", repo.linesCalls)
	}

	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if _, err := svc.PortfolioSummary(ctx, 7, PeriodCurrentYear); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.linesCalls != 2 {
		t.Fatalf("lines fetched %d times, want a recompute after bump", repo.linesCalls)
	}
}

func TestPortfolioSummaryWithoutRedis(t *testing.T) {
	repo := &mockRepo{accounts: testAccounts(), lines: []JournalEntryLine{{AccountID: 1, Debit: 40}}}
	svc := NewService(repo, nil, NewCache(nil, 0))

	totals, err := svc.PortfolioSummary(context.Background(), 7, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Assets != 40 {
		t.Fatalf("totals = %+v", totals)
	}
}
