package db

import "gorm.io/gorm"

type Repositories struct {
	Records     *KVStore
	Accounts    *AccountRepository
	Sessions    *SessionRepository
	Ledger      *LedgerRepository
	Titles      *TitleRepository
	Employees   *EmployeeRepository
	Preferences *PreferenceRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	records := NewKVStore(database)
	return &Repositories{
		Records:     records,
		Accounts:    NewAccountRepository(records),
		Sessions:    NewSessionRepository(records),
		Ledger:      NewLedgerRepository(records),
		Titles:      NewTitleRepository(records),
		Employees:   NewEmployeeRepository(records),
		Preferences: NewPreferenceRepository(records),
	}
}
