package journals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
)

// Repository encapsulates DB operations for journal entries.
type Repository interface {
	List(ctx context.Context, clubID int64) ([]ledger.JournalEntry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, in PostingInput) (ledger.JournalEntry, error)
	InsertLines(ctx context.Context, entryID int64, lines []PostingLineInput) error
	LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error
	GetEntryWithLines(ctx context.Context, clubID, entryID int64) (ledger.JournalEntry, []ledger.JournalEntryLine, error)
	UpdateEntryStatus(ctx context.Context, entryID int64, status ledger.EntryStatus) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, clubID int64) ([]ledger.JournalEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, club_id, number, transaction_date, description, status, created_at, updated_at
FROM journal_entries WHERE club_id=$1 ORDER BY number DESC`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []ledger.JournalEntry
	for rows.Next() {
		var e ledger.JournalEntry
		if err := rows.Scan(&e.ID, &e.ClubID, &e.Number, &e.Date, &e.Description, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, in PostingInput) (ledger.JournalEntry, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO journal_entries (club_id, transaction_date, description, status)
VALUES ($1,$2,$3,'POSTED') RETURNING id, number, created_at, updated_at`, in.ClubID, in.Date, in.Description)
	entry := ledger.JournalEntry{
		ClubID:      in.ClubID,
		Date:        in.Date,
		Description: in.Description,
		Status:      ledger.EntryStatusPosted,
	}
	if err := row.Scan(&entry.ID, &entry.Number, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return ledger.JournalEntry{}, err
	}
	return entry, nil
}

func (r *txRepository) InsertLines(ctx context.Context, entryID int64, lines []PostingLineInput) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO journal_entry_lines (entry_id, account_id, debit, credit, description)
VALUES ($1,$2,$3,$4,$5)`, entryID, line.AccountID, toNumeric(line.Debit), toNumeric(line.Credit), line.Description); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO source_links (module, ref_id, entry_id) VALUES ($1,$2,$3)`, module, ref, entryID)
	if err != nil {
		return mapLinkError(err)
	}
	return nil
}

// mapLinkError converts the source_links unique violation into the sentinel
// the service layer reports as a conflict.
func mapLinkError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_source_links" {
		return ErrSourceConflict
	}
	return err
}

func (r *txRepository) GetEntryWithLines(ctx context.Context, clubID, entryID int64) (ledger.JournalEntry, []ledger.JournalEntryLine, error) {
	var entry ledger.JournalEntry
	err := r.tx.QueryRow(ctx, `SELECT id, club_id, number, transaction_date, description, status, created_at, updated_at
FROM journal_entries WHERE id=$1 AND club_id=$2`, entryID, clubID).
		Scan(&entry.ID, &entry.ClubID, &entry.Number, &entry.Date, &entry.Description, &entry.Status, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.JournalEntry{}, nil, ledger.ErrEntryNotFound
		}
		return ledger.JournalEntry{}, nil, err
	}
	rows, err := r.tx.Query(ctx, `SELECT id, entry_id, account_id, debit, credit, description, created_at, updated_at
FROM journal_entry_lines WHERE entry_id=$1 ORDER BY id ASC`, entryID)
	if err != nil {
		return ledger.JournalEntry{}, nil, err
	}
	defer rows.Close()
	var lines []ledger.JournalEntryLine
	for rows.Next() {
		var line ledger.JournalEntryLine
		if err := rows.Scan(&line.ID, &line.EntryID, &line.AccountID, &line.Debit, &line.Credit, &line.Description, &line.CreatedAt, &line.UpdatedAt); err != nil {
			return ledger.JournalEntry{}, nil, err
		}
		lines = append(lines, line)
	}
	return entry, lines, rows.Err()
}

func (r *txRepository) UpdateEntryStatus(ctx context.Context, entryID int64, status ledger.EntryStatus) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE journal_entries SET status=$2, updated_at=NOW() WHERE id=$1`, entryID, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ledger.ErrEntryNotFound
	}
	return nil
}

func toNumeric(v float64) any {
	return fmt.Sprintf("%.2f", v)
}
