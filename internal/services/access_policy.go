package services

import "github.com/terraincognita07/caixa/internal/models"

// MEIEmployeeCap is the number of employees a MEI company may register.
const MEIEmployeeCap = 1

// AccountKind treats sessions stored without a type as PJ.
func AccountKind(session models.Session) models.AccountType {
	if session.Type == "" {
		return models.AccountTypePJ
	}
	return session.Type
}

func IsIndividual(session models.Session) bool {
	return AccountKind(session) == models.AccountTypePF
}

// EmployeeCap returns capped=false when the company has no limit.
func EmployeeCap(company *models.CompanyProfile) (limit int, capped bool) {
	if company != nil && company.Category == models.CompanyMEI {
		return MEIEmployeeCap, true
	}
	return 0, false
}

func EmployeeCapReached(company *models.CompanyProfile, count int) bool {
	limit, capped := EmployeeCap(company)
	return capped && count >= limit
}

func CanAccessEmployeeFeatures(session models.Session) bool {
	return !IsIndividual(session)
}

func RequireEmployeeAccess(session models.Session) error {
	if !CanAccessEmployeeFeatures(session) {
		return ErrEmployeeAccessForbidden
	}
	return nil
}

func requireAuthenticated(session models.Session) error {
	if session.Email == "" {
		return ErrNotAuthenticated
	}
	return nil
}
