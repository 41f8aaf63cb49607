package journals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aeroclub-erp/aeroclub-erp/internal/ledger"
	"github.com/aeroclub-erp/aeroclub-erp/internal/shared"
	_ "github.com/aeroclub-erp/aeroclub-erp/testing"
)

type memoryRepo struct {
	nextID  int64
	entries map[int64]ledger.JournalEntry
	lines   map[int64][]ledger.JournalEntryLine
	sources map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		nextID:  1,
		entries: make(map[int64]ledger.JournalEntry),
		lines:   make(map[int64][]ledger.JournalEntryLine),
		sources: make(map[string]int64),
	}
}

func (m *memoryRepo) List(ctx context.Context, clubID int64) ([]ledger.JournalEntry, error) {
	var out []ledger.JournalEntry
	for _, e := range m.entries {
		if e.ClubID == clubID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) InsertEntry(ctx context.Context, in PostingInput) (ledger.JournalEntry, error) {
	id := m.nextID
	m.nextID++
	entry := ledger.JournalEntry{
		ID:          id,
		ClubID:      in.ClubID,
		Number:      id,
		Date:        in.Date,
		Description: in.Description,
		Status:      ledger.EntryStatusPosted,
	}
	m.entries[id] = entry
	return entry, nil
}

func (m *memoryRepo) InsertLines(ctx context.Context, entryID int64, lines []PostingLineInput) error {
	m.lines[entryID] = toEntryLines(entryID, lines, time.Now())
	return nil
}

func (m *memoryRepo) LinkSource(ctx context.Context, module string, ref uuid.UUID, entryID int64) error {
	key := module + ":" + ref.String()
	if _, exists := m.sources[key]; exists {
		return ErrSourceConflict
	}
	m.sources[key] = entryID
	return nil
}

func (m *memoryRepo) GetEntryWithLines(ctx context.Context, clubID, entryID int64) (ledger.JournalEntry, []ledger.JournalEntryLine, error) {
	entry, ok := m.entries[entryID]
	if !ok || entry.ClubID != clubID {
		return ledger.JournalEntry{}, nil, ledger.ErrEntryNotFound
	}
	return entry, m.lines[entryID], nil
}

func (m *memoryRepo) UpdateEntryStatus(ctx context.Context, entryID int64, status ledger.EntryStatus) error {
	entry, ok := m.entries[entryID]
	if !ok {
		return ledger.ErrEntryNotFound
	}
	entry.Status = status
	m.entries[entryID] = entry
	return nil
}

type memoryAudit struct {
	logs []shared.AuditLog
}

func (m *memoryAudit) Record(ctx context.Context, log shared.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

type countingBumper struct {
	bumps int
}

func (c *countingBumper) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

func validInput() PostingInput {
	return PostingInput{
		ClubID:       7,
		Date:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Fuel invoice",
		SourceModule: "procurement",
		SourceID:     uuid.New(),
		ActorID:      42,
		Lines: []PostingLineInput{
			{AccountID: 1, Debit: 120.50},
			{AccountID: 2, Credit: 120.50},
		},
	}
}

func TestPostEntry(t *testing.T) {
	repo := newMemoryRepo()
	audit := &memoryAudit{}
	cache := &countingBumper{}
	svc := NewService(repo, audit, cache)

	entry, err := svc.PostEntry(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, ledger.EntryStatusPosted, entry.Status)
	require.Len(t, entry.Lines, 2)
	require.Equal(t, 1, cache.bumps)
	require.Len(t, audit.logs, 1)
	require.Equal(t, "journal.post", audit.logs[0].Action)
	require.EqualValues(t, 7, audit.logs[0].ClubID)
}

func TestPostEntryRejectsUnbalanced(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	in := validInput()
	in.Lines[1].Credit = 100

	_, err := svc.PostEntry(context.Background(), in)
	require.ErrorIs(t, err, ErrUnbalanced)
}

func TestPostEntryRejectsSingleLine(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	in := validInput()
	in.Lines = in.Lines[:1]

	_, err := svc.PostEntry(context.Background(), in)
	require.ErrorIs(t, err, ErrTooFewLines)
}

func TestPostEntryToleratesRoundingAtCentPrecision(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	in := validInput()
	in.Lines = []PostingLineInput{
		{AccountID: 1, Debit: 0.1},
		{AccountID: 2, Debit: 0.2},
		{AccountID: 3, Credit: 0.3},
	}

	_, err := svc.PostEntry(context.Background(), in)
	require.NoError(t, err)
}

func TestPostEntryDuplicateSource(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	in := validInput()

	_, err := svc.PostEntry(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.PostEntry(context.Background(), in)
	require.ErrorIs(t, err, ErrSourceConflict)
}

func TestVoidEntry(t *testing.T) {
	repo := newMemoryRepo()
	cache := &countingBumper{}
	svc := NewService(repo, nil, cache)

	entry, err := svc.PostEntry(context.Background(), validInput())
	require.NoError(t, err)

	voided, err := svc.VoidEntry(context.Background(), VoidInput{ClubID: 7, EntryID: entry.ID, Reason: "duplicate booking"})
	require.NoError(t, err)
	require.Equal(t, ledger.EntryStatusVoid, voided.Status)
	require.Equal(t, 2, cache.bumps)

	_, err = svc.VoidEntry(context.Background(), VoidInput{ClubID: 7, EntryID: entry.ID, Reason: "again"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestVoidEntryWrongClub(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)

	entry, err := svc.PostEntry(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.VoidEntry(context.Background(), VoidInput{ClubID: 8, EntryID: entry.ID, Reason: "nope"})
	require.ErrorIs(t, err, ledger.ErrEntryNotFound)
}

func TestValidateRejectsMixedLine(t *testing.T) {
	in := validInput()
	in.Lines[0].Credit = 5
	err := in.Validate()
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnbalanced))
}
