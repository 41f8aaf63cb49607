package journals

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
)

var (
	// ErrUnbalanced indicates debit != credit across the entry lines.
	ErrUnbalanced = errors.New("journals: entry lines must balance")
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = errors.New("journals: entry requires at least two lines")
	// ErrSourceConflict indicates the source reference is already linked.
	ErrSourceConflict = errors.New("journals: source already linked")
	// ErrInvalidStatus indicates the requested transition is not allowed.
	ErrInvalidStatus = errors.New("journals: invalid status transition")
)

// PostingLineInput describes one leg of a posting request.
type PostingLineInput struct {
	AccountID   int64
	Debit       float64
	Credit      float64
	Description string
}

// PostingInput groups fields required to create a journal entry.
type PostingInput struct {
	ClubID       int64
	Date         time.Time
	Description  string
	SourceModule string
	SourceID     uuid.UUID
	ActorID      int64
	Lines        []PostingLineInput
}

// VoidInput wraps parameters for voiding an entry.
type VoidInput struct {
	ClubID  int64
	EntryID int64
	ActorID int64
	Reason  string
}

// Validate ensures posting input meets minimum criteria. Balance is compared
// at cent precision, matching how amounts are stored.
func (in PostingInput) Validate() error {
	if in.ClubID == 0 {
		return errors.New("journals: club required")
	}
	if in.Date.IsZero() {
		return errors.New("journals: transaction date required")
	}
	if len(in.Lines) < 2 {
		return ErrTooFewLines
	}
	var debit, credit float64
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("journals: line %d missing account", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("journals: line %d negative amount", idx)
		}
		if line.Debit > 0 && line.Credit > 0 {
			return fmt.Errorf("journals: line %d cannot be both debit and credit", idx)
		}
		debit += line.Debit
		credit += line.Credit
	}
	if fmt.Sprintf("%.2f", debit) != fmt.Sprintf("%.2f", credit) {
		return ErrUnbalanced
	}
	if in.SourceModule == "" {
		return errors.New("journals: source module required")
	}
	if in.SourceID == uuid.Nil {
		return errors.New("journals: source id required")
	}
	return nil
}

func toEntryLines(entryID int64, lines []PostingLineInput, ts time.Time) []ledger.JournalEntryLine {
	out := make([]ledger.JournalEntryLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, ledger.JournalEntryLine{
			EntryID:     entryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}
	return out
}
