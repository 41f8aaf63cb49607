package ledger

import "strings"

// classifierRule pairs a predicate with the category it selects.
type classifierRule struct {
	category Category
	match    func(Account) bool
}

// classifierRules is evaluated in order, first match wins. Order matters:
// supplier accounts are recognised by type before any code prefix is
// inspected, because prefixes overlap between categories.
var classifierRules = []classifierRule{
	{CategorySupplier, func(a Account) bool {
		return a.Type == AccountTypeLiability && a.Subtype == "SUPPLIER"
	}},
	{CategoryCustomer, codePrefix("411")},
	{CategoryExpense, codePrefix("6")},
	{CategoryProduct, func(a Account) bool {
		return strings.HasPrefix(a.Code, "706") || strings.HasPrefix(a.Code, "707")
	}},
	{CategoryTreasury, codePrefix("512")},
}

func codePrefix(prefix string) func(Account) bool {
	return func(a Account) bool { return strings.HasPrefix(a.Code, prefix) }
}

// Classify maps an account to its business sub-ledger category. It is total:
// every account resolves to exactly one category, and anything outside the
// rule table is CategoryOther.
func Classify(account Account) Category {
	for _, rule := range classifierRules {
		if rule.match(account) {
			return rule.category
		}
	}
	return CategoryOther
}

// ParseCategory converts a route parameter into a Category.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToUpper(raw)) {
	case CategoryCustomer:
		return CategoryCustomer, nil
	case CategorySupplier:
		return CategorySupplier, nil
	case CategoryProduct:
		return CategoryProduct, nil
	case CategoryExpense:
		return CategoryExpense, nil
	case CategoryTreasury:
		return CategoryTreasury, nil
	case CategoryOther:
		return CategoryOther, nil
	}
	return "", ErrUnknownCategory
}
