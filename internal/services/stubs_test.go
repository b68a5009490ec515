package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/terraincognita07/caixa/internal/models"
)

type stubAccountRepo struct {
	accounts  []models.Account
	saveCalls int
	listErr   error
}

func (repo *stubAccountRepo) List() ([]models.Account, error) {
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	return append([]models.Account(nil), repo.accounts...), nil
}

func (repo *stubAccountRepo) SaveAll(accounts []models.Account) error {
	repo.saveCalls++
	repo.accounts = append([]models.Account(nil), accounts...)
	return nil
}

type stubSessionRepo struct {
	session *models.Session
}

func (repo *stubSessionRepo) Load() (models.Session, bool, error) {
	if repo.session == nil {
		return models.Session{}, false, nil
	}
	return *repo.session, true, nil
}

func (repo *stubSessionRepo) Save(session models.Session) error {
	repo.session = &session
	return nil
}

func (repo *stubSessionRepo) Clear() error {
	repo.session = nil
	return nil
}

type stubLedgerRepo struct {
	entries   map[string][]models.LedgerEntry
	saveCalls int
}

func newStubLedgerRepo() *stubLedgerRepo {
	return &stubLedgerRepo{entries: make(map[string][]models.LedgerEntry)}
}

func (repo *stubLedgerRepo) List(owner string) ([]models.LedgerEntry, error) {
	return append([]models.LedgerEntry{}, repo.entries[owner]...), nil
}

func (repo *stubLedgerRepo) SaveAll(owner string, entries []models.LedgerEntry) error {
	repo.saveCalls++
	repo.entries[owner] = append([]models.LedgerEntry{}, entries...)
	return nil
}

type stubTitleRepo struct {
	titles    map[string][]models.JobTitle
	saveCalls int
}

func newStubTitleRepo() *stubTitleRepo {
	return &stubTitleRepo{titles: make(map[string][]models.JobTitle)}
}

func (repo *stubTitleRepo) List(email string) ([]models.JobTitle, error) {
	return append([]models.JobTitle{}, repo.titles[email]...), nil
}

func (repo *stubTitleRepo) SaveAll(email string, titles []models.JobTitle) error {
	repo.saveCalls++
	repo.titles[email] = append([]models.JobTitle{}, titles...)
	return nil
}

type stubEmployeeRepo struct {
	employees map[string][]models.Employee
	saveCalls int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string][]models.Employee)}
}

func (repo *stubEmployeeRepo) List(email string) ([]models.Employee, error) {
	return append([]models.Employee{}, repo.employees[email]...), nil
}

func (repo *stubEmployeeRepo) SaveAll(email string, employees []models.Employee) error {
	repo.saveCalls++
	repo.employees[email] = append([]models.Employee{}, employees...)
	return nil
}

type stubPreferenceRepo struct {
	dark *bool
}

func (repo *stubPreferenceRepo) DarkTheme() (bool, error) {
	if repo.dark == nil {
		return false, nil
	}
	return *repo.dark, nil
}

func (repo *stubPreferenceRepo) SetDarkTheme(enabled bool) error {
	repo.dark = &enabled
	return nil
}

type stubRecordStore struct {
	values   map[string]string
	putCalls int
}

func (store *stubRecordStore) Keys() ([]string, error) {
	keys := make([]string, 0, len(store.values))
	for key := range store.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (store *stubRecordStore) Get(key string) (string, bool, error) {
	value, found := store.values[key]
	return value, found, nil
}

func (store *stubRecordStore) PutMany(values map[string]string) error {
	store.putCalls++
	if store.values == nil {
		store.values = make(map[string]string)
	}
	for key, value := range values {
		store.values[key] = value
	}
	return nil
}

type stubHasher struct{}

func (stubHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var errStubRejected = errors.New("rejected")

func sequenceIDs(prefix string) func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func pfSession() models.Session {
	return models.Session{Name: "Ana", Email: "ana@x.com", Type: models.AccountTypePF}
}

func pjSession(category models.CompanyCategory) models.Session {
	return models.Session{
		Name:    "Loja",
		Email:   "loja@x.com",
		Type:    models.AccountTypePJ,
		Company: &models.CompanyProfile{LegalName: "Loja", TaxID: "12345678000190", Category: category},
	}
}
