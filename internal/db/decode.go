package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/caixa/internal/models"
)

var ErrInvalidRecord = errors.New("invalid stored record")

// DecodeError reports a stored value that failed to parse or validate.
// Index is the offending array element, or -1 when the whole value is bad.
type DecodeError struct {
	Key   string
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("decode %s[%d]: %v", e.Key, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func invalidField(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, field)
}

func decodeList[T any](key string, raw string, check func(T) error) ([]T, error) {
	items := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &DecodeError{Key: key, Index: -1, Err: err}
	}
	if items == nil {
		items = make([]T, 0)
	}
	for index, item := range items {
		if err := check(item); err != nil {
			return nil, &DecodeError{Key: key, Index: index, Err: err}
		}
	}
	return items, nil
}

func DecodeAccounts(key string, raw string) ([]models.Account, error) {
	seen := make(map[string]bool)
	return decodeList(key, raw, func(account models.Account) error {
		if err := checkAccount(account); err != nil {
			return err
		}
		email := strings.ToLower(strings.TrimSpace(account.Email))
		if seen[email] {
			return fmt.Errorf("%w: duplicate email %s", ErrInvalidRecord, email)
		}
		seen[email] = true
		return nil
	})
}

func checkAccount(account models.Account) error {
	switch {
	case strings.TrimSpace(account.Name) == "":
		return invalidField("nome")
	case strings.TrimSpace(account.Email) == "":
		return invalidField("email")
	case account.PasswordHash == "":
		return invalidField("senhaHash")
	case account.Type != "" && !account.Type.Valid():
		return invalidField("tipoConta")
	}
	return checkCompany(account.Company)
}

func checkCompany(company *models.CompanyProfile) error {
	if company == nil {
		return nil
	}
	if strings.TrimSpace(company.LegalName) == "" {
		return invalidField("empresa.nome")
	}
	if strings.TrimSpace(string(company.Category)) == "" {
		return invalidField("empresa.tipo")
	}
	return nil
}

func DecodeSession(key string, raw string) (models.Session, error) {
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return models.Session{}, &DecodeError{Key: key, Index: -1, Err: err}
	}

	var err error
	switch {
	case strings.TrimSpace(session.Email) == "":
		err = invalidField("email")
	case session.Type != "" && !session.Type.Valid():
		err = invalidField("tipoConta")
	default:
		err = checkCompany(session.Company)
	}
	if err != nil {
		return models.Session{}, &DecodeError{Key: key, Index: -1, Err: err}
	}
	return session, nil
}

func DecodeLedger(key string, raw string) ([]models.LedgerEntry, error) {
	return decodeList(key, raw, func(entry models.LedgerEntry) error {
		switch {
		case entry.ID == "":
			return invalidField("id")
		case strings.TrimSpace(entry.Description) == "":
			return invalidField("descricao")
		case !entry.Amount.IsPositive():
			return invalidField("valor")
		case !entry.Kind.Valid():
			return invalidField("tipo")
		}
		return nil
	})
}

func DecodeTitles(key string, raw string) ([]models.JobTitle, error) {
	return decodeList(key, raw, func(title models.JobTitle) error {
		switch {
		case title.ID == "":
			return invalidField("id")
		case strings.TrimSpace(title.Name) == "":
			return invalidField("nome")
		}
		return nil
	})
}

// DecodeEmployees accepts a zero salary and any non-empty employment type found
// in older records; creation rules are stricter.
func DecodeEmployees(key string, raw string) ([]models.Employee, error) {
	return decodeList(key, raw, func(employee models.Employee) error {
		switch {
		case employee.ID == "":
			return invalidField("id")
		case strings.TrimSpace(employee.Name) == "":
			return invalidField("nome")
		case employee.Salary.IsNegative():
			return invalidField("salario")
		case strings.TrimSpace(string(employee.EmploymentType)) == "":
			return invalidField("vinculo")
		}
		return nil
	})
}

func DecodeDarkTheme(key string, raw string) (bool, error) {
	var enabled bool
	if err := json.Unmarshal([]byte(raw), &enabled); err != nil {
		return false, &DecodeError{Key: key, Index: -1, Err: err}
	}
	return enabled, nil
}

// ValidateValue runs the decoder registered for the kind of key.
func ValidateValue(key string, raw string) error {
	var err error
	switch ClassifyKey(key) {
	case KeyAccounts:
		_, err = DecodeAccounts(key, raw)
	case KeySession:
		_, err = DecodeSession(key, raw)
	case KeyLedger:
		_, err = DecodeLedger(key, raw)
	case KeyTitles:
		_, err = DecodeTitles(key, raw)
	case KeyEmployees:
		_, err = DecodeEmployees(key, raw)
	case KeyDarkTheme:
		_, err = DecodeDarkTheme(key, raw)
	default:
		err = &DecodeError{Key: key, Index: -1, Err: ErrUnknownKey}
	}
	return err
}

var ErrUnknownKey = errors.New("unknown store key")
