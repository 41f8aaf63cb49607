package masterdata

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
)

// Repository defines data access for the chart of accounts and the
// category-specific detail records.
type Repository interface {
	ListAccounts(ctx context.Context, clubID int64, filters ListFilters) ([]ledger.Account, int, error)
	GetAccount(ctx context.Context, clubID, id int64) (ledger.Account, error)
	CreateAccount(ctx context.Context, clubID int64, in AccountInput) (ledger.Account, error)
	UpdateAccount(ctx context.Context, clubID, id int64, in AccountInput) error

	GetCustomerDetail(ctx context.Context, clubID, accountID int64) (CustomerDetail, error)
	UpsertCustomerDetail(ctx context.Context, d CustomerDetail) error
	ListCustomerDetails(ctx context.Context, clubID int64) ([]CustomerDetail, error)

	GetSupplierDetail(ctx context.Context, clubID, accountID int64) (SupplierDetail, error)
	UpsertSupplierDetail(ctx context.Context, d SupplierDetail) error
	ListSupplierDetails(ctx context.Context, clubID int64) ([]SupplierDetail, error)

	GetProductDetail(ctx context.Context, clubID, accountID int64) (ProductDetail, error)
	UpsertProductDetail(ctx context.Context, d ProductDetail) error
	ListProductDetails(ctx context.Context, clubID int64) ([]ProductDetail, error)

	GetExpenseDetail(ctx context.Context, clubID, accountID int64) (ExpenseDetail, error)
	UpsertExpenseDetail(ctx context.Context, d ExpenseDetail) error
	ListExpenseDetails(ctx context.Context, clubID int64) ([]ExpenseDetail, error)

	GetTreasuryDetail(ctx context.Context, clubID, accountID int64) (TreasuryDetail, error)
	UpsertTreasuryDetail(ctx context.Context, d TreasuryDetail) error
	ListTreasuryDetails(ctx context.Context, clubID int64) ([]TreasuryDetail, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a PostgreSQL backed masterdata repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListAccounts(ctx context.Context, clubID int64, filters ListFilters) ([]ledger.Account, int, error) {
	query := `SELECT id, club_id, code, name, account_type, subtype, created_at, updated_at FROM accounts WHERE club_id=$1`
	args := []interface{}{clubID}
	argCount := 1

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR code ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM accounts WHERE club_id=$1`
	countArgs := []interface{}{clubID}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $2 OR code ILIKE $2)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.ID, &a.ClubID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (r *repository) GetAccount(ctx context.Context, clubID, id int64) (ledger.Account, error) {
	var a ledger.Account
	err := r.db.QueryRow(ctx, `SELECT id, club_id, code, name, account_type, subtype, created_at, updated_at
FROM accounts WHERE id=$1 AND club_id=$2`, id, clubID).
		Scan(&a.ID, &a.ClubID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Account{}, ErrNotFound
		}
		return ledger.Account{}, err
	}
	return a, nil
}

func (r *repository) CreateAccount(ctx context.Context, clubID int64, in AccountInput) (ledger.Account, error) {
	now := time.Now()
	account := ledger.Account{
		ClubID:    clubID,
		Code:      in.Code,
		Name:      in.Name,
		Type:      ledger.AccountType(in.Type),
		Subtype:   in.Subtype,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.QueryRow(ctx, `INSERT INTO accounts (club_id, code, name, account_type, subtype, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`, clubID, in.Code, in.Name, in.Type, in.Subtype, now, now).Scan(&account.ID)
	if err != nil {
		return ledger.Account{}, mapAccountError(err)
	}
	return account, nil
}

func (r *repository) UpdateAccount(ctx context.Context, clubID, id int64, in AccountInput) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET code=$1, name=$2, account_type=$3, subtype=$4, updated_at=NOW()
WHERE id=$5 AND club_id=$6`, in.Code, in.Name, in.Type, in.Subtype, id, clubID)
	if err != nil {
		return mapAccountError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetCustomerDetail(ctx context.Context, clubID, accountID int64) (CustomerDetail, error) {
	var d CustomerDetail
	err := r.db.QueryRow(ctx, `SELECT account_id, club_id, contact, email, phone, address, created_at, updated_at
FROM customer_details WHERE account_id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&d.AccountID, &d.ClubID, &d.Contact, &d.Email, &d.Phone, &d.Address, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CustomerDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertCustomerDetail(ctx context.Context, d CustomerDetail) error {
	_, err := r.db.Exec(ctx, `INSERT INTO customer_details (account_id, club_id, contact, email, phone, address, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
ON CONFLICT (account_id) DO UPDATE SET contact=$3, email=$4, phone=$5, address=$6, updated_at=NOW()`,
		d.AccountID, d.ClubID, d.Contact, d.Email, d.Phone, d.Address)
	return err
}

func (r *repository) ListCustomerDetails(ctx context.Context, clubID int64) ([]CustomerDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, club_id, contact, email, phone, address, created_at, updated_at
FROM customer_details WHERE club_id=$1`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var details []CustomerDetail
	for rows.Next() {
		var d CustomerDetail
		if err := rows.Scan(&d.AccountID, &d.ClubID, &d.Contact, &d.Email, &d.Phone, &d.Address, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *repository) GetSupplierDetail(ctx context.Context, clubID, accountID int64) (SupplierDetail, error) {
	var d SupplierDetail
	err := r.db.QueryRow(ctx, `SELECT account_id, club_id, contact, email, phone, default_expense_account_id, created_at, updated_at
FROM supplier_details WHERE account_id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&d.AccountID, &d.ClubID, &d.Contact, &d.Email, &d.Phone, &d.DefaultExpenseAccountID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SupplierDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertSupplierDetail(ctx context.Context, d SupplierDetail) error {
	_, err := r.db.Exec(ctx, `INSERT INTO supplier_details (account_id, club_id, contact, email, phone, default_expense_account_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
ON CONFLICT (account_id) DO UPDATE SET contact=$3, email=$4, phone=$5, default_expense_account_id=$6, updated_at=NOW()`,
		d.AccountID, d.ClubID, d.Contact, d.Email, d.Phone, d.DefaultExpenseAccountID)
	return err
}

func (r *repository) ListSupplierDetails(ctx context.Context, clubID int64) ([]SupplierDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, club_id, contact, email, phone, default_expense_account_id, created_at, updated_at
FROM supplier_details WHERE club_id=$1`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var details []SupplierDetail
	for rows.Next() {
		var d SupplierDetail
		if err := rows.Scan(&d.AccountID, &d.ClubID, &d.Contact, &d.Email, &d.Phone, &d.DefaultExpenseAccountID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *repository) GetProductDetail(ctx context.Context, clubID, accountID int64) (ProductDetail, error) {
	var d ProductDetail
	err := r.db.QueryRow(ctx, `SELECT account_id, club_id, description, category, tax_rate, created_at, updated_at
FROM product_details WHERE account_id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&d.AccountID, &d.ClubID, &d.Description, &d.Category, &d.TaxRate, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProductDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertProductDetail(ctx context.Context, d ProductDetail) error {
	_, err := r.db.Exec(ctx, `INSERT INTO product_details (account_id, club_id, description, category, tax_rate, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
ON CONFLICT (account_id) DO UPDATE SET description=$3, category=$4, tax_rate=$5, updated_at=NOW()`,
		d.AccountID, d.ClubID, d.Description, d.Category, d.TaxRate)
	return err
}

func (r *repository) ListProductDetails(ctx context.Context, clubID int64) ([]ProductDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, club_id, description, category, tax_rate, created_at, updated_at
FROM product_details WHERE club_id=$1`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var details []ProductDetail
	for rows.Next() {
		var d ProductDetail
		if err := rows.Scan(&d.AccountID, &d.ClubID, &d.Description, &d.Category, &d.TaxRate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *repository) GetExpenseDetail(ctx context.Context, clubID, accountID int64) (ExpenseDetail, error) {
	var d ExpenseDetail
	err := r.db.QueryRow(ctx, `SELECT account_id, club_id, description, created_at, updated_at
FROM expense_details WHERE account_id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&d.AccountID, &d.ClubID, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ExpenseDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertExpenseDetail(ctx context.Context, d ExpenseDetail) error {
	_, err := r.db.Exec(ctx, `INSERT INTO expense_details (account_id, club_id, description, created_at, updated_at)
VALUES ($1,$2,$3,NOW(),NOW())
ON CONFLICT (account_id) DO UPDATE SET description=$3, updated_at=NOW()`,
		d.AccountID, d.ClubID, d.Description)
	return err
}

func (r *repository) ListExpenseDetails(ctx context.Context, clubID int64) ([]ExpenseDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, club_id, description, created_at, updated_at
FROM expense_details WHERE club_id=$1`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var details []ExpenseDetail
	for rows.Next() {
		var d ExpenseDetail
		if err := rows.Scan(&d.AccountID, &d.ClubID, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *repository) GetTreasuryDetail(ctx context.Context, clubID, accountID int64) (TreasuryDetail, error) {
	var d TreasuryDetail
	err := r.db.QueryRow(ctx, `SELECT account_id, club_id, iban, bic, accepts_external_payments, can_group_sales, created_at, updated_at
FROM treasury_details WHERE account_id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&d.AccountID, &d.ClubID, &d.IBAN, &d.BIC, &d.AcceptsExternalPayments, &d.CanGroupSales, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return TreasuryDetail{}, ErrNotFound
	}
	return d, err
}

func (r *repository) UpsertTreasuryDetail(ctx context.Context, d TreasuryDetail) error {
	_, err := r.db.Exec(ctx, `INSERT INTO treasury_details (account_id, club_id, iban, bic, accepts_external_payments, can_group_sales, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
ON CONFLICT (account_id) DO UPDATE SET iban=$3, bic=$4, accepts_external_payments=$5, can_group_sales=$6, updated_at=NOW()`,
		d.AccountID, d.ClubID, d.IBAN, d.BIC, d.AcceptsExternalPayments, d.CanGroupSales)
	return err
}

func (r *repository) ListTreasuryDetails(ctx context.Context, clubID int64) ([]TreasuryDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT account_id, club_id, iban, bic, accepts_external_payments, can_group_sales, created_at, updated_at
FROM treasury_details WHERE club_id=$1`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var details []TreasuryDetail
	for rows.Next() {
		var d TreasuryDetail
		if err := rows.Scan(&d.AccountID, &d.ClubID, &d.IBAN, &d.BIC, &d.AcceptsExternalPayments, &d.CanGroupSales, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// mapAccountError converts a unique violation on the account code into the
// duplicate sentinel.
func mapAccountError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "name":
		return "name " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "code " + dir
	}
}
