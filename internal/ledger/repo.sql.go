package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads ledger data from PostgreSQL. All queries are scoped to a
// single club; the read side never aggregates server-side, summation happens
// in the service.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAccounts returns the full chart of accounts for a club ordered by code.
func (r *Repository) ListAccounts(ctx context.Context, clubID int64) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, club_id, code, name, account_type, subtype, created_at, updated_at
FROM accounts WHERE club_id=$1 ORDER BY code`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.ClubID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetAccount fetches one account, enforcing the club boundary.
func (r *Repository) GetAccount(ctx context.Context, clubID, accountID int64) (Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, `SELECT id, club_id, code, name, account_type, subtype, created_at, updated_at
FROM accounts WHERE id=$1 AND club_id=$2`, accountID, clubID).
		Scan(&a.ID, &a.ClubID, &a.Code, &a.Name, &a.Type, &a.Subtype, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// ListLines returns every line of posted entries for a club inside the date
// range, in one round trip. Grouping by account happens in memory.
func (r *Repository) ListLines(ctx context.Context, clubID int64, period DateRange) ([]JournalEntryLine, error) {
	rows, err := r.pool.Query(ctx, `SELECT l.id, l.entry_id, l.account_id, l.debit, l.credit, l.description, l.created_at, l.updated_at
FROM journal_entry_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE e.club_id=$1 AND e.status='POSTED' AND e.transaction_date BETWEEN $2 AND $3
ORDER BY e.transaction_date, l.id`, clubID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []JournalEntryLine
	for rows.Next() {
		var line JournalEntryLine
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.Debit, &line.Credit, &line.Description, &line.CreatedAt, &line.UpdatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ListAccountTransactions returns the statement rows for one account ordered
// by transaction date ascending. Each row is the entry metadata joined with
// the account's single relevant line.
func (r *Repository) ListAccountTransactions(ctx context.Context, clubID, accountID int64, period DateRange) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT l.entry_id, e.transaction_date, e.description, l.debit, l.credit
FROM journal_entry_lines l
JOIN journal_entries e ON e.id = l.entry_id
WHERE e.club_id=$1 AND l.account_id=$2 AND e.status='POSTED' AND e.transaction_date BETWEEN $3 AND $4
ORDER BY e.transaction_date, l.id`, clubID, accountID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		if err := rows.Scan(&tx.EntryID, &tx.Date, &tx.Description, &tx.Debit, &tx.Credit); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
