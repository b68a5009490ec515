package db

import "strings"

// Store keys keep the names used by the browser version so dumps import as-is.
const (
	AccountsKey     = "usuarios"
	SessionKey      = "sessao-usuario"
	SharedLedgerKey = "transacoes"
	DarkThemeKey    = "tema-escuro"

	ledgerKeyPrefix    = "transacoes-"
	titlesKeyPrefix    = "cargos-"
	employeesKeyPrefix = "funcionarios-"
)

func AccountLedgerKey(email string) string {
	return ledgerKeyPrefix + email
}

func TitlesKey(email string) string {
	return titlesKeyPrefix + email
}

func EmployeesKey(email string) string {
	return employeesKeyPrefix + email
}

type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyAccounts
	KeySession
	KeyLedger
	KeyTitles
	KeyEmployees
	KeyDarkTheme
)

// ClassifyKey maps a stored key to the collection it holds.
func ClassifyKey(key string) KeyKind {
	switch {
	case key == AccountsKey:
		return KeyAccounts
	case key == SessionKey:
		return KeySession
	case key == SharedLedgerKey:
		return KeyLedger
	case key == DarkThemeKey:
		return KeyDarkTheme
	case hasOwnerSuffix(key, ledgerKeyPrefix):
		return KeyLedger
	case hasOwnerSuffix(key, titlesKeyPrefix):
		return KeyTitles
	case hasOwnerSuffix(key, employeesKeyPrefix):
		return KeyEmployees
	default:
		return KeyUnknown
	}
}

func hasOwnerSuffix(key string, prefix string) bool {
	return strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}
