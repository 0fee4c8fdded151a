package model

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeChecking  AccountType = "checking"
	AccountTypeSavings   AccountType = "savings"
	AccountTypeCredit    AccountType = "credit"
	AccountTypeBrokerage AccountType = "brokerage"
)

// Account is a bank account that transactions belong to. Accounts are
// user-created and are never deleted once transactions reference them.
type Account struct {
	ID          string
	Name        string
	Institution string
	Type        AccountType
}

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeBrokerage:
		return true
	}
	return false
}
