package models

// AccountType separates individuals (PF, pessoa física) from companies (PJ, pessoa jurídica).
type AccountType string

const (
	AccountTypePF AccountType = "PF"
	AccountTypePJ AccountType = "PJ"
)

func (t AccountType) Valid() bool {
	return t == AccountTypePF || t == AccountTypePJ
}

// CompanyCategory is the legal size category of a PJ account.
type CompanyCategory string

const (
	CompanyMEI  CompanyCategory = "MEI"
	CompanyME   CompanyCategory = "ME"
	CompanyEPP  CompanyCategory = "EPP"
	CompanyLTDA CompanyCategory = "LTDA"
	CompanySA   CompanyCategory = "SA"
	CompanySLU  CompanyCategory = "SLU"
)

func CompanyCategories() []CompanyCategory {
	return []CompanyCategory{CompanyMEI, CompanyME, CompanyEPP, CompanyLTDA, CompanySA, CompanySLU}
}

func (c CompanyCategory) Valid() bool {
	for _, known := range CompanyCategories() {
		if c == known {
			return true
		}
	}
	return false
}

const (
	CNPJDigits = 14
	CPFDigits  = 11
)

type CompanyProfile struct {
	LegalName string          `json:"nome"`
	TaxID     string          `json:"cnpj"`
	Category  CompanyCategory `json:"tipo"`
}

// Account is a registered user. Email is stored trimmed and lower-cased and is
// the unique key across the store.
type Account struct {
	Name         string          `json:"nome"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"senhaHash"`
	Type         AccountType     `json:"tipoConta,omitempty"`
	Company      *CompanyProfile `json:"empresa,omitempty"`
}

// Session is the snapshot of the logged-in account. There is at most one.
type Session struct {
	Name    string          `json:"nome"`
	Email   string          `json:"email"`
	Type    AccountType     `json:"tipoConta,omitempty"`
	Company *CompanyProfile `json:"empresa,omitempty"`
}

func NewSession(account Account) Session {
	session := Session{
		Name:  account.Name,
		Email: account.Email,
		Type:  account.Type,
	}
	if session.Type == "" {
		session.Type = AccountTypePJ
	}
	if account.Company != nil {
		company := *account.Company
		session.Company = &company
	}
	return session
}
