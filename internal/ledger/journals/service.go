package journals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
)

// AuditPort records ledger events for compliance.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// CacheInvalidator bumps derived-balance caches after a write.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// Service coordinates posting and voiding journal entries.
type Service struct {
	repo  Repository
	audit AuditPort
	cache CacheInvalidator
	now   func() time.Time
}

// NewService constructs the journal service.
func NewService(repo Repository, audit AuditPort, cache CacheInvalidator) *Service {
	return &Service{repo: repo, audit: audit, cache: cache, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// List returns the club's journal entries, newest first.
func (s *Service) List(ctx context.Context, clubID int64) ([]ledger.JournalEntry, error) {
	return s.repo.List(ctx, clubID)
}

// PostEntry validates and persists a new journal entry. The source reference
// makes posting idempotent: a replayed request hits the unique constraint and
// surfaces ErrSourceConflict instead of double-booking.
func (s *Service) PostEntry(ctx context.Context, input PostingInput) (ledger.JournalEntry, error) {
	if err := input.Validate(); err != nil {
		return ledger.JournalEntry{}, err
	}
	var entry ledger.JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		inserted, err := tx.InsertEntry(ctx, input)
		if err != nil {
			return err
		}
		if err := tx.InsertLines(ctx, inserted.ID, input.Lines); err != nil {
			return err
		}
		if err := tx.LinkSource(ctx, input.SourceModule, input.SourceID, inserted.ID); err != nil {
			return err
		}
		inserted.Lines = toEntryLines(inserted.ID, input.Lines, s.now())
		entry = inserted
		return nil
	})
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ClubID:   input.ClubID,
			ActorID:  input.ActorID,
			Action:   "journal.post",
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%d", entry.ID),
			Meta: map[string]any{
				"number":        entry.Number,
				"source_module": input.SourceModule,
				"source_id":     input.SourceID.String(),
			},
			At: s.now(),
		})
	}
	return entry, nil
}

// VoidEntry marks an existing journal entry as VOID, removing its lines from
// every balance computation.
func (s *Service) VoidEntry(ctx context.Context, input VoidInput) (ledger.JournalEntry, error) {
	if input.EntryID == 0 {
		return ledger.JournalEntry{}, errors.New("journals: entry id required")
	}
	var entry ledger.JournalEntry
	var lines []ledger.JournalEntryLine
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, currLines, err := tx.GetEntryWithLines(ctx, input.ClubID, input.EntryID)
		if err != nil {
			return err
		}
		if current.Status != ledger.EntryStatusPosted {
			return ErrInvalidStatus
		}
		if err := tx.UpdateEntryStatus(ctx, current.ID, ledger.EntryStatusVoid); err != nil {
			return err
		}
		entry = current
		entry.Status = ledger.EntryStatusVoid
		lines = currLines
		return nil
	})
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	entry.Lines = lines
	if s.cache != nil {
		_ = s.cache.Bump(ctx)
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ClubID:   input.ClubID,
			ActorID:  input.ActorID,
			Action:   "journal.void",
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%d", entry.ID),
			Meta: map[string]any{
				"reason": input.Reason,
			},
			At: s.now(),
		})
	}
	return entry, nil
}
