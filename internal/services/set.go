package services

// Stores groups the persistence ports the services are built on.
type Stores struct {
	Accounts    AccountRepository
	Sessions    SessionRepository
	Ledger      LedgerRepository
	Titles      TitleRepository
	Employees   EmployeeRepository
	Preferences PreferenceRepository
	Records     RecordStore
	Validate    RecordValidator
	AccountsKey string
}

// Set is every service sharing one store.
type Set struct {
	Accounts    *AccountService
	Ledger      *LedgerService
	Roster      *RosterService
	Preferences *PreferencesService
	Backup      *BackupService
}

func NewSet(stores Stores, scope LedgerScope) *Set {
	accounts := NewAccountService(stores.Accounts, stores.Sessions)
	return &Set{
		Accounts:    accounts,
		Ledger:      NewLedgerService(stores.Ledger, stores.Employees, scope),
		Roster:      NewRosterService(stores.Titles, stores.Employees),
		Preferences: NewPreferencesService(stores.Preferences),
		Backup:      NewBackupService(stores.Records, stores.Validate, stores.AccountsKey, accounts),
	}
}
