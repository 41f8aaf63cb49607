package masterdata

import (
	"context"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
)

// Service exposes chart of accounts and detail record management. It also
// implements ledger.DetailsPort so the balance engine can join detail
// attributes onto sub-ledger rows without importing this package.
type Service struct {
	repo Repository
}

// NewService constructs the masterdata service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAccounts returns a page of the club's chart of accounts.
func (s *Service) ListAccounts(ctx context.Context, clubID int64, filters ListFilters) ([]ledger.Account, int, error) {
	if filters.Limit <= 0 || filters.Limit > 200 {
		filters.Limit = 50
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	return s.repo.ListAccounts(ctx, clubID, filters)
}

// GetAccount fetches one account scoped to the club.
func (s *Service) GetAccount(ctx context.Context, clubID, id int64) (ledger.Account, error) {
	return s.repo.GetAccount(ctx, clubID, id)
}

// CreateAccount inserts a new chart of accounts record.
func (s *Service) CreateAccount(ctx context.Context, clubID int64, in AccountInput) (ledger.Account, error) {
	return s.repo.CreateAccount(ctx, clubID, in)
}

// UpdateAccount updates an existing account's editable fields.
func (s *Service) UpdateAccount(ctx context.Context, clubID, id int64, in AccountInput) error {
	return s.repo.UpdateAccount(ctx, clubID, id, in)
}

// GetCustomerDetail returns the customer record attached to an account.
func (s *Service) GetCustomerDetail(ctx context.Context, clubID, accountID int64) (CustomerDetail, error) {
	return s.repo.GetCustomerDetail(ctx, clubID, accountID)
}

// SaveCustomerDetail upserts the customer record for an account.
func (s *Service) SaveCustomerDetail(ctx context.Context, clubID, accountID int64, d CustomerDetail) error {
	d.AccountID = accountID
	d.ClubID = clubID
	return s.repo.UpsertCustomerDetail(ctx, d)
}

// GetSupplierDetail returns the supplier record attached to an account.
func (s *Service) GetSupplierDetail(ctx context.Context, clubID, accountID int64) (SupplierDetail, error) {
	return s.repo.GetSupplierDetail(ctx, clubID, accountID)
}

// SaveSupplierDetail upserts the supplier record for an account.
func (s *Service) SaveSupplierDetail(ctx context.Context, clubID, accountID int64, d SupplierDetail) error {
	d.AccountID = accountID
	d.ClubID = clubID
	return s.repo.UpsertSupplierDetail(ctx, d)
}

// GetProductDetail returns the product record attached to an account.
func (s *Service) GetProductDetail(ctx context.Context, clubID, accountID int64) (ProductDetail, error) {
	return s.repo.GetProductDetail(ctx, clubID, accountID)
}

// SaveProductDetail upserts the product record for an account.
func (s *Service) SaveProductDetail(ctx context.Context, clubID, accountID int64, d ProductDetail) error {
	d.AccountID = accountID
	d.ClubID = clubID
	return s.repo.UpsertProductDetail(ctx, d)
}

// GetExpenseDetail returns the expense record attached to an account.
func (s *Service) GetExpenseDetail(ctx context.Context, clubID, accountID int64) (ExpenseDetail, error) {
	return s.repo.GetExpenseDetail(ctx, clubID, accountID)
}

// SaveExpenseDetail upserts the expense record for an account.
func (s *Service) SaveExpenseDetail(ctx context.Context, clubID, accountID int64, d ExpenseDetail) error {
	d.AccountID = accountID
	d.ClubID = clubID
	return s.repo.UpsertExpenseDetail(ctx, d)
}

// GetTreasuryDetail returns the treasury record attached to an account.
func (s *Service) GetTreasuryDetail(ctx context.Context, clubID, accountID int64) (TreasuryDetail, error) {
	return s.repo.GetTreasuryDetail(ctx, clubID, accountID)
}

// SaveTreasuryDetail upserts the treasury record for an account.
func (s *Service) SaveTreasuryDetail(ctx context.Context, clubID, accountID int64, d TreasuryDetail) error {
	d.AccountID = accountID
	d.ClubID = clubID
	return s.repo.UpsertTreasuryDetail(ctx, d)
}

// DetailsByCategory loads every detail record of the category in one query
// and keys it by account id, so a sub-ledger page joins them without a
// per-account round trip.
func (s *Service) DetailsByCategory(ctx context.Context, clubID int64, category ledger.Category) (map[int64]ledger.DetailRecord, error) {
	out := make(map[int64]ledger.DetailRecord)
	switch category {
	case ledger.CategoryCustomer:
		details, err := s.repo.ListCustomerDetails(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			out[d.AccountID] = ledger.DetailRecord{
				"contact": d.Contact,
				"email":   d.Email,
				"phone":   d.Phone,
				"address": d.Address,
			}
		}
	case ledger.CategorySupplier:
		details, err := s.repo.ListSupplierDetails(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			record := ledger.DetailRecord{
				"contact": d.Contact,
				"email":   d.Email,
				"phone":   d.Phone,
			}
			if d.DefaultExpenseAccountID != nil {
				record["default_expense_account_id"] = *d.DefaultExpenseAccountID
			}
			out[d.AccountID] = record
		}
	case ledger.CategoryProduct:
		details, err := s.repo.ListProductDetails(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			out[d.AccountID] = ledger.DetailRecord{
				"description": d.Description,
				"category":    d.Category,
				"tax_rate":    d.TaxRate,
			}
		}
	case ledger.CategoryExpense:
		details, err := s.repo.ListExpenseDetails(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			out[d.AccountID] = ledger.DetailRecord{
				"description": d.Description,
			}
		}
	case ledger.CategoryTreasury:
		details, err := s.repo.ListTreasuryDetails(ctx, clubID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			out[d.AccountID] = ledger.DetailRecord{
				"iban":                      d.IBAN,
				"bic":                       d.BIC,
				"accepts_external_payments": d.AcceptsExternalPayments,
				"can_group_sales":           d.CanGroupSales,
			}
		}
	}
	return out, nil
}
