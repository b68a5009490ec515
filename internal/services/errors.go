package services

import (
	"errors"
	"fmt"
)

// Category sentinels. Field errors wrap ErrValidation, uniqueness errors wrap ErrConflict.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrRequiredFields         = fmt.Errorf("%w: required fields missing", ErrValidation)
	ErrPasswordTooShort       = fmt.Errorf("%w: password too short", ErrValidation)
	ErrPasswordMismatch       = fmt.Errorf("%w: password confirmation mismatch", ErrValidation)
	ErrInvalidAccountType     = fmt.Errorf("%w: invalid account type", ErrValidation)
	ErrCompanyFieldsRequired  = fmt.Errorf("%w: company fields missing", ErrValidation)
	ErrInvalidCNPJ            = fmt.Errorf("%w: cnpj must have 14 digits", ErrValidation)
	ErrInvalidCompanyCategory = fmt.Errorf("%w: invalid company category", ErrValidation)

	ErrEntryDescriptionRequired = fmt.Errorf("%w: entry description required", ErrValidation)
	ErrInvalidAmount            = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	ErrInvalidEntryKind         = fmt.Errorf("%w: invalid entry kind", ErrValidation)
	ErrInvalidEntryFilter       = fmt.Errorf("%w: invalid entry filter", ErrValidation)
	ErrInvalidLedgerScope       = fmt.Errorf("%w: invalid ledger scope", ErrValidation)

	ErrTitleNameRequired      = fmt.Errorf("%w: job title name required", ErrValidation)
	ErrEmployeeFieldsRequired = fmt.Errorf("%w: employee fields missing", ErrValidation)
	ErrInvalidCPF             = fmt.Errorf("%w: cpf must have 11 digits", ErrValidation)
	ErrInvalidEmploymentType  = fmt.Errorf("%w: invalid employment type", ErrValidation)

	ErrInvalidSnapshot = fmt.Errorf("%w: invalid snapshot", ErrValidation)
)

var (
	ErrDuplicateEmail = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrDuplicateTitle = fmt.Errorf("%w: job title already exists", ErrConflict)
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrAccountNotFound         = errors.New("account not found")
	ErrNotAuthenticated        = errors.New("not authenticated")
	ErrCapReached              = errors.New("employee limit reached for MEI")
	ErrEmployeeAccessForbidden = errors.New("employee features are not available for PF accounts")
	ErrEmployeeNotFound        = errors.New("employee not found")
)

type errorCode struct {
	target error
	code   string
}

// Specific sentinels come before the categories they wrap.
var errorCodes = []errorCode{
	{ErrRequiredFields, "required_fields"},
	{ErrPasswordTooShort, "password_too_short"},
	{ErrPasswordMismatch, "password_mismatch"},
	{ErrInvalidAccountType, "invalid_account_type"},
	{ErrCompanyFieldsRequired, "company_fields_required"},
	{ErrInvalidCNPJ, "invalid_cnpj"},
	{ErrInvalidCompanyCategory, "invalid_company_category"},
	{ErrEntryDescriptionRequired, "entry_description_required"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInvalidEntryKind, "invalid_entry_kind"},
	{ErrInvalidEntryFilter, "invalid_entry_filter"},
	{ErrInvalidLedgerScope, "invalid_ledger_scope"},
	{ErrTitleNameRequired, "title_name_required"},
	{ErrEmployeeFieldsRequired, "employee_fields_required"},
	{ErrInvalidCPF, "invalid_cpf"},
	{ErrInvalidEmploymentType, "invalid_employment_type"},
	{ErrInvalidSnapshot, "invalid_snapshot"},
	{ErrDuplicateEmail, "duplicate_email"},
	{ErrDuplicateTitle, "duplicate_title"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrAccountNotFound, "account_not_found"},
	{ErrNotAuthenticated, "not_authenticated"},
	{ErrCapReached, "cap_reached"},
	{ErrEmployeeAccessForbidden, "employee_access_forbidden"},
	{ErrEmployeeNotFound, "employee_not_found"},
	{ErrValidation, "invalid_request"},
}

// ErrorCode returns the stable code of a service error, or "" when err is not one.
// Codes double as the "errors.<code>" message keys.
func ErrorCode(err error) string {
	for _, candidate := range errorCodes {
		if errors.Is(err, candidate.target) {
			return candidate.code
		}
	}
	return ""
}

// ErrorCodes lists every code ErrorCode can return.
func ErrorCodes() []string {
	codes := make([]string, 0, len(errorCodes))
	for _, candidate := range errorCodes {
		codes = append(codes, candidate.code)
	}
	return codes
}
