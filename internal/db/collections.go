package db

import (
	"encoding/json"
	"fmt"

	"github.com/terraincognita07/caixa/internal/models"
)

func loadList[T any](store *KVStore, key string, decode func(string, string) ([]T, error)) ([]T, error) {
	raw, found, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return make([]T, 0), nil
	}
	return decode(key, raw)
}

func saveJSON(store *KVStore, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func saveList[T any](store *KVStore, key string, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	return saveJSON(store, key, items)
}

type AccountRepository struct {
	store *KVStore
}

func NewAccountRepository(store *KVStore) *AccountRepository {
	return &AccountRepository{store: store}
}

func (repo *AccountRepository) List() ([]models.Account, error) {
	return loadList(repo.store, AccountsKey, DecodeAccounts)
}

func (repo *AccountRepository) SaveAll(accounts []models.Account) error {
	return saveList(repo.store, AccountsKey, accounts)
}

type SessionRepository struct {
	store *KVStore
}

func NewSessionRepository(store *KVStore) *SessionRepository {
	return &SessionRepository{store: store}
}

func (repo *SessionRepository) Load() (models.Session, bool, error) {
	raw, found, err := repo.store.Get(SessionKey)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("load %s: %w", SessionKey, err)
	}
	if !found {
		return models.Session{}, false, nil
	}
	session, err := DecodeSession(SessionKey, raw)
	if err != nil {
		return models.Session{}, false, err
	}
	return session, true, nil
}

func (repo *SessionRepository) Save(session models.Session) error {
	return saveJSON(repo.store, SessionKey, session)
}

func (repo *SessionRepository) Clear() error {
	return repo.store.Delete(SessionKey)
}

// LedgerRepository keeps one shared ledger (owner "") or one ledger per
// account email.
type LedgerRepository struct {
	store *KVStore
}

func NewLedgerRepository(store *KVStore) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func LedgerKey(owner string) string {
	if owner == "" {
		return SharedLedgerKey
	}
	return AccountLedgerKey(owner)
}

func (repo *LedgerRepository) List(owner string) ([]models.LedgerEntry, error) {
	return loadList(repo.store, LedgerKey(owner), DecodeLedger)
}

func (repo *LedgerRepository) SaveAll(owner string, entries []models.LedgerEntry) error {
	return saveList(repo.store, LedgerKey(owner), entries)
}

type TitleRepository struct {
	store *KVStore
}

func NewTitleRepository(store *KVStore) *TitleRepository {
	return &TitleRepository{store: store}
}

func (repo *TitleRepository) List(email string) ([]models.JobTitle, error) {
	return loadList(repo.store, TitlesKey(email), DecodeTitles)
}

func (repo *TitleRepository) SaveAll(email string, titles []models.JobTitle) error {
	return saveList(repo.store, TitlesKey(email), titles)
}

type EmployeeRepository struct {
	store *KVStore
}

func NewEmployeeRepository(store *KVStore) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

func (repo *EmployeeRepository) List(email string) ([]models.Employee, error) {
	return loadList(repo.store, EmployeesKey(email), DecodeEmployees)
}

func (repo *EmployeeRepository) SaveAll(email string, employees []models.Employee) error {
	return saveList(repo.store, EmployeesKey(email), employees)
}

type PreferenceRepository struct {
	store *KVStore
}

func NewPreferenceRepository(store *KVStore) *PreferenceRepository {
	return &PreferenceRepository{store: store}
}

func (repo *PreferenceRepository) DarkTheme() (bool, error) {
	raw, found, err := repo.store.Get(DarkThemeKey)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", DarkThemeKey, err)
	}
	if !found {
		return false, nil
	}
	return DecodeDarkTheme(DarkThemeKey, raw)
}

func (repo *PreferenceRepository) SetDarkTheme(enabled bool) error {
	return saveJSON(repo.store, DarkThemeKey, enabled)
}
