package masterdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
)

type detailsRepo struct {
	Repository
	suppliers  []SupplierDetail
	treasuries []TreasuryDetail
}

func (r *detailsRepo) ListSupplierDetails(ctx context.Context, clubID int64) ([]SupplierDetail, error) {
	return r.suppliers, nil
}

func (r *detailsRepo) ListTreasuryDetails(ctx context.Context, clubID int64) ([]TreasuryDetail, error) {
	return r.treasuries, nil
}

func TestDetailsByCategorySupplier(t *testing.T) {
	expense := int64(12)
	repo := &detailsRepo{suppliers: []SupplierDetail{
		{AccountID: 2, Contact: "Avgas SARL", Email: "billing@avgas.example", DefaultExpenseAccountID: &expense},
		{AccountID: 5, Contact: "Hangar SCI"},
	}}
	svc := NewService(repo)

	records, err := svc.DetailsByCategory(context.Background(), 7, ledger.CategorySupplier)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Avgas SARL", records[2]["contact"])
	require.EqualValues(t, 12, records[2]["default_expense_account_id"])
	require.NotContains(t, records[5], "default_expense_account_id")
}

func TestDetailsByCategoryTreasury(t *testing.T) {
	repo := &detailsRepo{treasuries: []TreasuryDetail{
		{AccountID: 9, IBAN: "FR7630006000011234567890189", AcceptsExternalPayments: true},
	}}
	svc := NewService(repo)

	records, err := svc.DetailsByCategory(context.Background(), 7, ledger.CategoryTreasury)
	require.NoError(t, err)
	require.Equal(t, true, records[9]["accepts_external_payments"])
}

func TestDetailsByCategoryOtherIsEmpty(t *testing.T) {
	svc := NewService(&detailsRepo{})
	records, err := svc.DetailsByCategory(context.Background(), 7, ledger.CategoryOther)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSortOrderWhitelist(t *testing.T) {
	require.Equal(t, "code ASC", sortOrder("", ""))
	require.Equal(t, "name DESC", sortOrder("name", "desc"))
	require.Equal(t, "created_at ASC", sortOrder("created_at", "asc"))
	require.Equal(t, "code ASC", sortOrder("drop table", "asc"))
}
