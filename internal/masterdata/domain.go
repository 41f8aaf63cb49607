package masterdata

import (
	"errors"
	"time"
)

// ListFilters represents standard list filters for chart of accounts pages.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string
}

// AccountInput carries the editable fields of a chart of accounts record.
type AccountInput struct {
	Code    string `json:"code" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,max=200"`
	Type    string `json:"account_type" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE USER_ACCOUNT"`
	Subtype string `json:"type" validate:"max=50"`
}

// CustomerDetail carries contact info for a customer account.
type CustomerDetail struct {
	AccountID int64     `json:"account_id"`
	ClubID    int64     `json:"club_id"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierDetail carries contact info plus the default expense account used
// when booking supplier invoices.
type SupplierDetail struct {
	AccountID               int64     `json:"account_id"`
	ClubID                  int64     `json:"club_id"`
	Contact                 string    `json:"contact"`
	Email                   string    `json:"email"`
	Phone                   string    `json:"phone"`
	DefaultExpenseAccountID *int64    `json:"default_expense_account_id"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// ProductDetail describes a sold product or service account.
type ProductDetail struct {
	AccountID   int64     `json:"account_id"`
	ClubID      int64     `json:"club_id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	TaxRate     float64   `json:"tax_rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseDetail describes an expense category account.
type ExpenseDetail struct {
	AccountID   int64     `json:"account_id"`
	ClubID      int64     `json:"club_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TreasuryDetail carries bank coordinates and payment flags for a treasury
// account.
type TreasuryDetail struct {
	AccountID               int64     `json:"account_id"`
	ClubID                  int64     `json:"club_id"`
	IBAN                    string    `json:"iban"`
	BIC                     string    `json:"bic"`
	AcceptsExternalPayments bool      `json:"accepts_external_payments"`
	CanGroupSales           bool      `json:"can_group_sales"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

var (
	// ErrNotFound indicates a missing masterdata record.
	ErrNotFound = errors.New("masterdata: not found")
	// ErrDuplicateCode indicates the account code already exists in the club.
	ErrDuplicateCode = errors.New("masterdata: account code already exists")
)
