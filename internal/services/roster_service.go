package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/caixa/internal/models"
)

type TitleRepository interface {
	List(email string) ([]models.JobTitle, error)
	SaveAll(email string, titles []models.JobTitle) error
}

type EmployeeRepository interface {
	List(email string) ([]models.Employee, error)
	SaveAll(email string, employees []models.Employee) error
}

type EmployeeInput struct {
	Name           string
	TaxID          string
	Title          string
	EmploymentType models.EmploymentType
	Salary         models.Amount
}

// NewEmployeeInput treats an unparseable salary like a missing one.
func NewEmployeeInput(name string, taxID string, title string, employmentType string, rawSalary string) EmployeeInput {
	salary, err := models.ParseAmount(rawSalary)
	if err != nil {
		salary = models.Amount{}
	}
	return EmployeeInput{
		Name:           name,
		TaxID:          taxID,
		Title:          title,
		EmploymentType: models.EmploymentType(strings.TrimSpace(employmentType)),
		Salary:         salary,
	}
}

type RosterStatus struct {
	Count        int  `json:"count"`
	Limit        int  `json:"limit"`
	LimitReached bool `json:"limitReached"`
}

type RosterService struct {
	mu        sync.Mutex
	titles    TitleRepository
	employees EmployeeRepository
	newID     func() string
	now       func() time.Time
}

func NewRosterService(titles TitleRepository, employees EmployeeRepository) *RosterService {
	return &RosterService{
		titles:    titles,
		employees: employees,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func checkRosterAccess(session models.Session) error {
	if err := RequireEmployeeAccess(session); err != nil {
		return err
	}
	return requireAuthenticated(session)
}

func (service *RosterService) AddTitle(session models.Session, name string) (models.JobTitle, error) {
	if err := checkRosterAccess(session); err != nil {
		return models.JobTitle{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.JobTitle{}, ErrTitleNameRequired
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.titles.List(session.Email)
	if err != nil {
		return models.JobTitle{}, err
	}
	for _, title := range current {
		if strings.EqualFold(strings.TrimSpace(title.Name), name) {
			return models.JobTitle{}, ErrDuplicateTitle
		}
	}

	title := models.JobTitle{ID: service.newID(), Name: name}
	next := append(append(make([]models.JobTitle, 0, len(current)+1), current...), title)
	if err := service.titles.SaveAll(session.Email, next); err != nil {
		return models.JobTitle{}, err
	}
	return title, nil
}

// RemoveTitle leaves employees that copied the title name untouched.
func (service *RosterService) RemoveTitle(session models.Session, id string) error {
	if err := checkRosterAccess(session); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.titles.List(session.Email)
	if err != nil {
		return err
	}
	next := make([]models.JobTitle, 0, len(current))
	for _, title := range current {
		if title.ID != id {
			next = append(next, title)
		}
	}
	if len(next) == len(current) {
		return nil
	}
	return service.titles.SaveAll(session.Email, next)
}

func (service *RosterService) Titles(session models.Session) ([]models.JobTitle, error) {
	if err := checkRosterAccess(session); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	return service.titles.List(session.Email)
}

func (service *RosterService) AddEmployee(session models.Session, input EmployeeInput) (models.Employee, error) {
	if err := checkRosterAccess(session); err != nil {
		return models.Employee{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.employees.List(session.Email)
	if err != nil {
		return models.Employee{}, err
	}
	if EmployeeCapReached(session.Company, len(current)) {
		return models.Employee{}, ErrCapReached
	}

	employee, err := validateEmployeeInput(input)
	if err != nil {
		return models.Employee{}, err
	}
	employee.ID = service.newID()
	employee.CreatedAt = service.now().UTC()

	next := append(append(make([]models.Employee, 0, len(current)+1), current...), employee)
	if err := service.employees.SaveAll(session.Email, next); err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

func validateEmployeeInput(input EmployeeInput) (models.Employee, error) {
	name := strings.TrimSpace(input.Name)
	taxID := strings.TrimSpace(input.TaxID)
	title := strings.TrimSpace(input.Title)
	employmentType := models.EmploymentType(strings.TrimSpace(string(input.EmploymentType)))
	if name == "" || taxID == "" || title == "" || employmentType == "" || !input.Salary.IsPositive() {
		return models.Employee{}, ErrEmployeeFieldsRequired
	}

	taxID = models.OnlyDigits(taxID)
	if len(taxID) != models.CPFDigits {
		return models.Employee{}, ErrInvalidCPF
	}
	if !employmentType.Valid() {
		return models.Employee{}, ErrInvalidEmploymentType
	}

	return models.Employee{
		Name:           name,
		TaxID:          taxID,
		Title:          title,
		EmploymentType: employmentType,
		Salary:         input.Salary,
	}, nil
}

func (service *RosterService) RemoveEmployee(session models.Session, id string) error {
	if err := checkRosterAccess(session); err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.employees.List(session.Email)
	if err != nil {
		return err
	}
	next := make([]models.Employee, 0, len(current))
	for _, employee := range current {
		if employee.ID != id {
			next = append(next, employee)
		}
	}
	if len(next) == len(current) {
		return nil
	}
	return service.employees.SaveAll(session.Email, next)
}

func (service *RosterService) Employees(session models.Session) ([]models.Employee, error) {
	if err := checkRosterAccess(session); err != nil {
		return nil, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	return service.employees.List(session.Email)
}

func (service *RosterService) Status(session models.Session) (RosterStatus, error) {
	employees, err := service.Employees(session)
	if err != nil {
		return RosterStatus{}, err
	}
	limit, _ := EmployeeCap(session.Company)
	return RosterStatus{
		Count:        len(employees),
		Limit:        limit,
		LimitReached: EmployeeCapReached(session.Company, len(employees)),
	}, nil
}
