package ledger

import (
	"errors"
	"time"
)

// AccountType enumerates chart of accounts categories.
type AccountType string

const (
	AccountTypeAsset       AccountType = "ASSET"
	AccountTypeLiability   AccountType = "LIABILITY"
	AccountTypeEquity      AccountType = "EQUITY"
	AccountTypeIncome      AccountType = "INCOME"
	AccountTypeExpense     AccountType = "EXPENSE"
	AccountTypeUserAccount AccountType = "USER_ACCOUNT"
)

// Category identifies the business sub-ledger an account belongs to.
type Category string

const (
	CategoryCustomer Category = "CUSTOMER"
	CategorySupplier Category = "SUPPLIER"
	CategoryProduct  Category = "PRODUCT"
	CategoryExpense  Category = "EXPENSE"
	CategoryTreasury Category = "TREASURY"
	CategoryOther    Category = "OTHER"
)

// EntryStatus enumerates journal entry lifecycle values.
type EntryStatus string

const (
	EntryStatusPosted EntryStatus = "POSTED"
	EntryStatusVoid   EntryStatus = "VOID"
)

// Account models a chart of accounts node. Code is unique per club.
type Account struct {
	ID        int64       `json:"id"`
	ClubID    int64       `json:"club_id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"account_type"`
	Subtype   string      `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// JournalEntry captures a dated, described group of debit/credit lines.
type JournalEntry struct {
	ID          int64              `json:"id"`
	ClubID      int64              `json:"club_id"`
	Number      int64              `json:"number"`
	Date        time.Time          `json:"transaction_date"`
	Description string             `json:"description"`
	Status      EntryStatus        `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Lines       []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine stores one debit or credit leg against an account.
type JournalEntryLine struct {
	ID          int64     `json:"id"`
	EntryID     int64     `json:"journal_entry_id"`
	AccountID   int64     `json:"account_id"`
	Debit       float64   `json:"debit_amount"`
	Credit      float64   `json:"credit_amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountBalance is the query-scoped aggregation result for one account.
type AccountBalance struct {
	Account     Account `json:"account"`
	Balance     float64 `json:"balance"`
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
}

// PortfolioTotals rolls signed balances into the dashboard buckets.
// Expense accounts are intentionally absent; they surface only through
// the expense sub-ledger.
type PortfolioTotals struct {
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	Equity      float64 `json:"equity"`
	Income      float64 `json:"income"`
}

// Transaction is one statement row for a single account: the entry metadata
// plus the account's single relevant line and the attached running balance.
type Transaction struct {
	EntryID     int64     `json:"journal_entry_id"`
	Date        time.Time `json:"transaction_date"`
	Description string    `json:"description"`
	Debit       float64   `json:"debit_amount"`
	Credit      float64   `json:"credit_amount"`
	Running     float64   `json:"running_balance"`
}

var (
	// ErrAccountNotFound indicates a missing or foreign-club account.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = errors.New("ledger: journal entry not found")
	// ErrUnknownCategory indicates a sub-ledger category outside the rule table.
	ErrUnknownCategory = errors.New("ledger: unknown sub-ledger category")
)
