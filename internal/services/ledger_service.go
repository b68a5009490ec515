package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/caixa/internal/models"
)

type LedgerRepository interface {
	List(owner string) ([]models.LedgerEntry, error)
	SaveAll(owner string, entries []models.LedgerEntry) error
}

type EmployeeLister interface {
	List(email string) ([]models.Employee, error)
}

// LedgerScope selects between one ledger for the whole store and one per account.
type LedgerScope string

const (
	LedgerScopeShared  LedgerScope = "shared"
	LedgerScopeAccount LedgerScope = "account"
)

func ParseLedgerScope(raw string) (LedgerScope, error) {
	switch LedgerScope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", LedgerScopeShared:
		return LedgerScopeShared, nil
	case LedgerScopeAccount:
		return LedgerScopeAccount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLedgerScope, raw)
	}
}

type EntryFilter string

const (
	FilterAll     EntryFilter = "all"
	FilterIncome  EntryFilter = "income"
	FilterExpense EntryFilter = "expense"
)

func ParseEntryFilter(raw string) (EntryFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all", "todas":
		return FilterAll, nil
	case "income", "entrada":
		return FilterIncome, nil
	case "expense", "saida":
		return FilterExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryFilter, raw)
	}
}

func (filter EntryFilter) matches(entry models.LedgerEntry) bool {
	switch filter {
	case FilterIncome:
		return entry.Kind == models.EntryIncome
	case FilterExpense:
		return entry.Kind == models.EntryExpense
	default:
		return true
	}
}

type EntryInput struct {
	Description string
	Amount      models.Amount
	Kind        models.EntryKind
}

// NewEntryInput parses raw form values, reporting problems in the order AddEntry checks them.
func NewEntryInput(description string, rawAmount string, rawKind string) (EntryInput, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return EntryInput{}, ErrEntryDescriptionRequired
	}
	amount, err := models.ParseAmount(rawAmount)
	if err != nil || !amount.IsPositive() {
		return EntryInput{}, ErrInvalidAmount
	}
	kind, ok := models.ParseEntryKind(strings.ToLower(strings.TrimSpace(rawKind)))
	if !ok {
		return EntryInput{}, ErrInvalidEntryKind
	}
	return EntryInput{Description: description, Amount: amount, Kind: kind}, nil
}

func validateEntryInput(input EntryInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return ErrEntryDescriptionRequired
	}
	if !input.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !input.Kind.Valid() {
		return ErrInvalidEntryKind
	}
	return nil
}

type LedgerService struct {
	mu        sync.Mutex
	entries   LedgerRepository
	employees EmployeeLister
	scope     LedgerScope
	newID     func() string
	now       func() time.Time
}

func NewLedgerService(entries LedgerRepository, employees EmployeeLister, scope LedgerScope) *LedgerService {
	if scope == "" {
		scope = LedgerScopeShared
	}
	return &LedgerService{
		entries:   entries,
		employees: employees,
		scope:     scope,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (service *LedgerService) Scope() LedgerScope {
	return service.scope
}

func (service *LedgerService) owner(session models.Session) (string, error) {
	if err := requireAuthenticated(session); err != nil {
		return "", err
	}
	if service.scope == LedgerScopeAccount {
		return session.Email, nil
	}
	return "", nil
}

func (service *LedgerService) AddEntry(session models.Session, input EntryInput) (models.LedgerEntry, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validateEntryInput(input); err != nil {
		return models.LedgerEntry{}, err
	}
	owner, err := service.owner(session)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.entries.List(owner)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	entry := models.LedgerEntry{
		ID:          service.newID(),
		Description: input.Description,
		Amount:      input.Amount,
		Kind:        input.Kind,
		CreatedAt:   service.now().UTC(),
	}
	next := make([]models.LedgerEntry, 0, len(current)+1)
	next = append(next, entry)
	next = append(next, current...)
	if err := service.entries.SaveAll(owner, next); err != nil {
		return models.LedgerEntry{}, err
	}
	return entry, nil
}

func (service *LedgerService) RemoveEntry(session models.Session, id string) error {
	owner, err := service.owner(session)
	if err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.entries.List(owner)
	if err != nil {
		return err
	}
	next := make([]models.LedgerEntry, 0, len(current))
	for _, entry := range current {
		if entry.ID != id {
			next = append(next, entry)
		}
	}
	if len(next) == len(current) {
		return nil
	}
	return service.entries.SaveAll(owner, next)
}

func (service *LedgerService) ClearAll(session models.Session) error {
	owner, err := service.owner(session)
	if err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.entries.List(owner)
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return nil
	}
	return service.entries.SaveAll(owner, []models.LedgerEntry{})
}

// Entries returns the ledger most recent first, keeping store order within a filter.
func (service *LedgerService) Entries(session models.Session, filter EntryFilter) ([]models.LedgerEntry, error) {
	current, err := service.load(session)
	if err != nil {
		return nil, err
	}
	if filter == "" || filter == FilterAll {
		return current, nil
	}
	selected := make([]models.LedgerEntry, 0, len(current))
	for _, entry := range current {
		if filter.matches(entry) {
			selected = append(selected, entry)
		}
	}
	return selected, nil
}

func (service *LedgerService) Summarize(session models.Session) (Summary, error) {
	current, err := service.load(session)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(current), nil
}

func (service *LedgerService) Chart(session models.Session) (ChartData, error) {
	summary, err := service.Summarize(session)
	if err != nil {
		return ChartData{}, err
	}
	return BuildChart(summary), nil
}

// AddSalaryExpense records the monthly salary of an employee as an expense.
func (service *LedgerService) AddSalaryExpense(session models.Session, employeeID string) (models.LedgerEntry, error) {
	if err := RequireEmployeeAccess(session); err != nil {
		return models.LedgerEntry{}, err
	}
	if err := requireAuthenticated(session); err != nil {
		return models.LedgerEntry{}, err
	}

	employees, err := service.employees.List(session.Email)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	for _, employee := range employees {
		if employee.ID != employeeID {
			continue
		}
		return service.AddEntry(session, EntryInput{
			Description: SalaryDescription(employee),
			Amount:      employee.Salary,
			Kind:        models.EntryExpense,
		})
	}
	return models.LedgerEntry{}, ErrEmployeeNotFound
}

func SalaryDescription(employee models.Employee) string {
	return fmt.Sprintf("Salário — %s (%s)", employee.Name, employee.Title)
}

func (service *LedgerService) load(session models.Session) ([]models.LedgerEntry, error) {
	owner, err := service.owner(session)
	if err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	return service.entries.List(owner)
}
