package ledger

import (
	"testing"
	"time"
)

func TestBalanceOfSignConvention(t *testing.T) {
	lines := []JournalEntryLine{
		{Debit: 1000},
		{Credit: 300},
	}

	asset := BalanceOf(lines, AccountTypeAsset)
	if asset.Balance != 700 {
		t.Fatalf("asset balance = %v, want 700", asset.Balance)
	}
	if asset.TotalDebit != 1000 || asset.TotalCredit != 300 {
		t.Fatalf("totals = %v/%v", asset.TotalDebit, asset.TotalCredit)
	}

	liability := BalanceOf(lines, AccountTypeLiability)
	if liability.Balance != -700 {
		t.Fatalf("liability balance = %v, want -700", liability.Balance)
	}
	if liability.Balance != -asset.Balance {
		t.Fatal("credit-normal balance must mirror the debit-normal one")
	}

	for _, typ := range []AccountType{AccountTypeIncome, AccountTypeUserAccount} {
		if got := BalanceOf(lines, typ).Balance; got != -700 {
			t.Fatalf("%s balance = %v, want -700", typ, got)
		}
	}
	for _, typ := range []AccountType{AccountTypeEquity, AccountTypeExpense} {
		if got := BalanceOf(lines, typ).Balance; got != 700 {
			t.Fatalf("%s balance = %v, want 700", typ, got)
		}
	}
}

func TestBalanceOfOffsettingLinesIsZero(t *testing.T) {
	lines := []JournalEntryLine{
		{Debit: 250},
		{Credit: 100},
		{Credit: 150},
	}
	types := []AccountType{
		AccountTypeAsset,
		AccountTypeLiability,
		AccountTypeEquity,
		AccountTypeIncome,
		AccountTypeExpense,
		AccountTypeUserAccount,
	}
	for _, typ := range types {
		bal := BalanceOf(lines, typ)
		if bal.Balance != 0 {
			t.Fatalf("%s balance = %v, offsetting lines must net to zero", typ, bal.Balance)
		}
		if bal.TotalDebit != 250 || bal.TotalCredit != 250 {
			t.Fatalf("%s totals = %v/%v", typ, bal.TotalDebit, bal.TotalCredit)
		}
	}
}

func TestBalanceOfEmpty(t *testing.T) {
	bal := BalanceOf(nil, AccountTypeAsset)
	if bal.Balance != 0 || bal.TotalDebit != 0 || bal.TotalCredit != 0 {
		t.Fatalf("empty balance = %+v", bal)
	}
}

func TestBalanceOfSupplierCreditExample(t *testing.T) {
	lines := []JournalEntryLine{{Credit: 500}}
	bal := BalanceOf(lines, AccountTypeLiability)
	// Credit-normal account: owing the supplier 500 shows as a positive
	// balance and the UI displays the absolute value. Older material showed
	// this case as -500, which the aggregation formula cannot produce; the
	// decision to pin the formula is recorded in DESIGN.md.
	if bal.Balance != 500 {
		t.Fatalf("supplier balance = %v, want 500", bal.Balance)
	}
	if bal.TotalDebit != 0 || bal.TotalCredit != 500 {
		t.Fatalf("totals = %v/%v", bal.TotalDebit, bal.TotalCredit)
	}
}

func TestWithRunningBalanceAnchorsAtNewest(t *testing.T) {
	txs := []Transaction{
		{EntryID: 1, Date: date(2024, time.January, 5), Debit: 100},
		{EntryID: 2, Date: date(2024, time.February, 5), Credit: 250},
		{EntryID: 3, Date: date(2024, time.March, 5), Debit: 50},
	}

	got := WithRunningBalance(txs)

	// Newest row carries only its own movement.
	if got[2].Running != -50 {
		t.Fatalf("newest running = %v, want -50", got[2].Running)
	}
	if got[1].Running != 200 {
		t.Fatalf("middle running = %v, want 200", got[1].Running)
	}
	// Oldest row carries the full credit-minus-debit total of the set.
	if got[0].Running != 100 {
		t.Fatalf("oldest running = %v, want 100", got[0].Running)
	}

	var total float64
	for _, tx := range txs {
		total += tx.Credit - tx.Debit
	}
	if got[0].Running != total {
		t.Fatalf("oldest running %v must equal set total %v", got[0].Running, total)
	}
}

func TestWithRunningBalanceDoesNotMutateInput(t *testing.T) {
	txs := []Transaction{{Debit: 10}, {Credit: 20}}
	_ = WithRunningBalance(txs)
	if txs[0].Running != 0 || txs[1].Running != 0 {
		t.Fatal("input slice must stay untouched")
	}
}

func TestWithRunningBalanceEmpty(t *testing.T) {
	if got := WithRunningBalance(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}
