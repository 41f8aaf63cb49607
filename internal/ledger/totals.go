package ledger

// BuildPortfolioTotals sums already-signed account balances into the four
// summary buckets. User accounts count as liabilities (prepaid member credit
// the club owes back); expense accounts are skipped entirely.
func BuildPortfolioTotals(balances []AccountBalance) PortfolioTotals {
	var totals PortfolioTotals
	for _, b := range balances {
		switch b.Account.Type {
		case AccountTypeAsset:
			totals.Assets += b.Balance
		case AccountTypeLiability, AccountTypeUserAccount:
			totals.Liabilities += b.Balance
		case AccountTypeEquity:
			totals.Equity += b.Balance
		case AccountTypeIncome:
			totals.Income += b.Balance
		}
	}
	return totals
}
