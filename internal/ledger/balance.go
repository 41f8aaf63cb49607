package ledger

// normalBalanceSign returns the multiplier that converts a raw debit-minus-
// credit total into the account's signed balance. Liability, income and user
// accounts carry a credit-normal balance, everything else is debit-normal.
func normalBalanceSign(t AccountType) float64 {
	switch t {
	case AccountTypeLiability, AccountTypeIncome, AccountTypeUserAccount:
		return -1
	}
	return 1
}

// BalanceOf aggregates the supplied lines into a signed balance for one
// account. Lines must already be filtered to the account and the desired
// period; an empty slice yields a zero balance.
func BalanceOf(lines []JournalEntryLine, accountType AccountType) AccountBalance {
	var debit, credit float64
	for _, line := range lines {
		debit += line.Debit
		credit += line.Credit
	}
	return AccountBalance{
		Balance:     normalBalanceSign(accountType) * (debit - credit),
		TotalDebit:  debit,
		TotalCredit: credit,
	}
}

// WithRunningBalance attaches a cumulative balance to each transaction of a
// chronologically ascending statement. The accumulation is anchored at the
// newest transaction and walks backwards, so the oldest row carries the full
// credit-minus-debit total of the set and the newest row carries only its own
// movement. No account-type sign multiplier is applied here; the raw
// credit-minus-debit orientation is the historical statement behaviour and
// must not be silently unified with BalanceOf.
func WithRunningBalance(transactions []Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	var running float64
	for i := len(out) - 1; i >= 0; i-- {
		running += out[i].Credit - out[i].Debit
		out[i].Running = running
	}
	return out
}
