package ledger

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"
)

// RepositoryPort abstracts ledger persistence for the read side.
type RepositoryPort interface {
	ListAccounts(ctx context.Context, clubID int64) ([]Account, error)
	GetAccount(ctx context.Context, clubID, accountID int64) (Account, error)
	ListLines(ctx context.Context, clubID int64, period DateRange) ([]JournalEntryLine, error)
	ListAccountTransactions(ctx context.Context, clubID, accountID int64, period DateRange) ([]Transaction, error)
}

// DetailRecord carries the category-specific attributes joined onto a
// sub-ledger row. A nil record is valid and rendered as "not set".
type DetailRecord map[string]any

// DetailsPort supplies detail records keyed by account id for one category.
type DetailsPort interface {
	DetailsByCategory(ctx context.Context, clubID int64, category Category) (map[int64]DetailRecord, error)
}

// SubLedgerEntry is one row of a category view: the balance plus the joined
// detail record.
type SubLedgerEntry struct {
	AccountBalance
	Category Category     `json:"category"`
	Detail   DetailRecord `json:"detail,omitempty"`
}

// Service computes balances, sub-ledger views and portfolio totals for one
// club at a time. All computation is a pure function of the fetched journal
// data; the service itself holds no ledger state.
type Service struct {
	repo    RepositoryPort
	details DetailsPort
	cache   *Cache
	now     func() time.Time
	flight  singleflight.Group
}

// NewService constructs the balance engine service.
func NewService(repo RepositoryPort, details DetailsPort, cache *Cache) *Service {
	return &Service{repo: repo, details: details, cache: cache, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// AccountBalances computes the signed balance of every account of the club
// over the resolved period. Lines are fetched in a single query and grouped
// in memory, so the cost stays flat in the number of accounts.
func (s *Service) AccountBalances(ctx context.Context, clubID int64, token PeriodToken) ([]AccountBalance, error) {
	accounts, err := s.repo.ListAccounts(ctx, clubID)
	if err != nil {
		return nil, err
	}
	period := ResolvePeriod(token, s.now())
	lines, err := s.repo.ListLines(ctx, clubID, period)
	if err != nil {
		return nil, err
	}
	byAccount := make(map[int64][]JournalEntryLine, len(accounts))
	for _, line := range lines {
		byAccount[line.AccountID] = append(byAccount[line.AccountID], line)
	}
	balances := make([]AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		bal := BalanceOf(byAccount[acc.ID], acc.Type)
		bal.Account = acc
		balances = append(balances, bal)
	}
	return balances, nil
}

// SubLedger returns the accounts of one business category with balances and
// detail records attached. Accounts classified as Other appear in no
// sub-ledger but still count toward PortfolioSummary.
func (s *Service) SubLedger(ctx context.Context, clubID int64, category Category, token PeriodToken) ([]SubLedgerEntry, error) {
	balances, err := s.AccountBalances(ctx, clubID, token)
	if err != nil {
		return nil, err
	}
	var details map[int64]DetailRecord
	if s.details != nil && category != CategoryOther {
		details, err = s.details.DetailsByCategory(ctx, clubID, category)
		if err != nil {
			return nil, err
		}
	}
	var entries []SubLedgerEntry
	for _, bal := range balances {
		if Classify(bal.Account) != category {
			continue
		}
		entries = append(entries, SubLedgerEntry{
			AccountBalance: bal,
			Category:       category,
			Detail:         details[bal.Account.ID],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Account.Code < entries[j].Account.Code
	})
	return entries, nil
}

// AccountStatement returns the chronological transaction trail of one
// account with the running balance attached to every row.
func (s *Service) AccountStatement(ctx context.Context, clubID, accountID int64, token PeriodToken) (Account, []Transaction, error) {
	account, err := s.repo.GetAccount(ctx, clubID, accountID)
	if err != nil {
		return Account{}, nil, err
	}
	period := ResolvePeriod(token, s.now())
	txs, err := s.repo.ListAccountTransactions(ctx, clubID, accountID, period)
	if err != nil {
		return Account{}, nil, err
	}
	return account, WithRunningBalance(txs), nil
}

// PortfolioSummary rolls every account balance into the four dashboard
// buckets. Results are cached per club/period/day and concurrent computations
// for the same key are collapsed through singleflight.
func (s *Service) PortfolioSummary(ctx context.Context, clubID int64, token PeriodToken) (PortfolioTotals, error) {
	key, err := s.cache.BuildKey(ctx, keySummary(clubID, token, s.now()))
	if err != nil {
		return PortfolioTotals{}, err
	}
	result, err, _ := s.flight.Do(key, func() (interface{}, error) {
		var totals PortfolioTotals
		err := s.cache.FetchJSON(ctx, key, &totals, func(ctx context.Context) (interface{}, error) {
			balances, err := s.AccountBalances(ctx, clubID, token)
			if err != nil {
				return nil, err
			}
			return BuildPortfolioTotals(balances), nil
		})
		return totals, err
	})
	if err != nil {
		return PortfolioTotals{}, err
	}
	return result.(PortfolioTotals), nil
}
