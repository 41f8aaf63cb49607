package ledger

import "testing"

func TestBuildPortfolioTotals(t *testing.T) {
	balances := []AccountBalance{
		{Account: Account{Type: AccountTypeAsset}, Balance: 700},
		{Account: Account{Type: AccountTypeLiability}, Balance: -500},
		{Account: Account{Type: AccountTypeIncome}, Balance: -200},
	}

	totals := BuildPortfolioTotals(balances)
	want := PortfolioTotals{Assets: 700, Liabilities: -500, Equity: 0, Income: -200}
	if totals != want {
		t.Fatalf("totals = %+v, want %+v", totals, want)
	}
}

func TestBuildPortfolioTotalsUserAccountsCountAsLiabilities(t *testing.T) {
	balances := []AccountBalance{
		{Account: Account{Type: AccountTypeLiability}, Balance: -300},
		{Account: Account{Type: AccountTypeUserAccount}, Balance: -120},
	}
	totals := BuildPortfolioTotals(balances)
	if totals.Liabilities != -420 {
		t.Fatalf("liabilities = %v, want -420", totals.Liabilities)
	}
}

func TestBuildPortfolioTotalsSkipsExpenses(t *testing.T) {
	balances := []AccountBalance{
		{Account: Account{Type: AccountTypeExpense}, Balance: 950},
		{Account: Account{Type: AccountTypeEquity}, Balance: 40},
	}
	totals := BuildPortfolioTotals(balances)
	if totals != (PortfolioTotals{Equity: 40}) {
		t.Fatalf("totals = %+v, expense balances must not appear", totals)
	}
}

func TestBuildPortfolioTotalsEmpty(t *testing.T) {
	if got := BuildPortfolioTotals(nil); got != (PortfolioTotals{}) {
		t.Fatalf("totals = %+v, want zero value", got)
	}
}
