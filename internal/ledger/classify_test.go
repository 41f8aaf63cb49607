package ledger

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		account Account
		want    Category
	}{
		{"supplier by type and subtype", Account{Code: "401000", Type: AccountTypeLiability, Subtype: "SUPPLIER"}, CategorySupplier},
		{"customer by 411 prefix", Account{Code: "411000", Type: AccountTypeAsset}, CategoryCustomer},
		{"expense by 6 prefix", Account{Code: "606300", Type: AccountTypeExpense}, CategoryExpense},
		{"product by 706 prefix", Account{Code: "706100", Type: AccountTypeIncome}, CategoryProduct},
		{"product by 707 prefix", Account{Code: "707000", Type: AccountTypeIncome}, CategoryProduct},
		{"treasury by 512 prefix", Account{Code: "512100", Type: AccountTypeAsset}, CategoryTreasury},
		{"512000 is treasury for any account type", Account{Code: "512000", Type: AccountTypeLiability}, CategoryTreasury},
		{"512000 is treasury even for user accounts", Account{Code: "512000", Type: AccountTypeUserAccount}, CategoryTreasury},
		{"supplier wins over 6 prefix", Account{Code: "601000", Type: AccountTypeLiability, Subtype: "SUPPLIER"}, CategorySupplier},
		{"liability without supplier subtype falls through", Account{Code: "164000", Type: AccountTypeLiability}, CategoryOther},
		{"unmatched code is other", Account{Code: "101000", Type: AccountTypeEquity}, CategoryOther},
		{"empty account is other", Account{}, CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.account); got != tc.want {
				t.Fatalf("Classify(%q/%s) = %s, want %s", tc.account.Code, tc.account.Type, got, tc.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("supplier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != CategorySupplier {
		t.Fatalf("ParseCategory(supplier) = %s", got)
	}
	if _, err := ParseCategory("banana"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
