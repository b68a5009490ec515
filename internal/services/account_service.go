package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength       = 4
	TemporaryPasswordLength = 12

	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

type AccountRepository interface {
	List() ([]models.Account, error)
	SaveAll(accounts []models.Account) error
}

type SessionRepository interface {
	Load() (models.Session, bool, error)
	Save(session models.Session) error
	Clear() error
}

type RegistrationInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	AccountType     models.AccountType
	CompanyName     string
	CompanyTaxID    string
	CompanyCategory models.CompanyCategory
}

type AccountService struct {
	mu       sync.Mutex
	accounts AccountRepository
	sessions SessionRepository
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAccountService(accounts AccountRepository, sessions SessionRepository) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
	}
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateRegistration checks the input in the order the registration form
// reports problems and returns the canonical account fields.
func ValidateRegistration(input RegistrationInput) (models.Account, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return models.Account{}, ErrRequiredFields
	}
	if len([]rune(input.Password)) < MinPasswordLength {
		return models.Account{}, ErrPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return models.Account{}, ErrPasswordMismatch
	}

	accountType := models.AccountType(strings.ToUpper(strings.TrimSpace(string(input.AccountType))))
	if !accountType.Valid() {
		return models.Account{}, ErrInvalidAccountType
	}

	account := models.Account{Name: name, Email: email, Type: accountType}
	if accountType == models.AccountTypePF {
		return account, nil
	}

	companyName := strings.TrimSpace(input.CompanyName)
	taxID := strings.TrimSpace(input.CompanyTaxID)
	category := models.CompanyCategory(strings.ToUpper(strings.TrimSpace(string(input.CompanyCategory))))
	if companyName == "" || taxID == "" || category == "" {
		return models.Account{}, ErrCompanyFieldsRequired
	}
	taxID = models.OnlyDigits(taxID)
	if len(taxID) != models.CNPJDigits {
		return models.Account{}, ErrInvalidCNPJ
	}
	if !category.Valid() {
		return models.Account{}, ErrInvalidCompanyCategory
	}

	account.Company = &models.CompanyProfile{LegalName: companyName, TaxID: taxID, Category: category}
	return account, nil
}

func (service *AccountService) Register(input RegistrationInput) (models.Account, error) {
	account, err := ValidateRegistration(input)
	if err != nil {
		return models.Account{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	accounts, err := service.accounts.List()
	if err != nil {
		return models.Account{}, err
	}
	if _, found := findAccount(accounts, account.Email); found {
		return models.Account{}, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), service.hashCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = string(hash)

	next := make([]models.Account, 0, len(accounts)+1)
	next = append(next, accounts...)
	next = append(next, account)
	if err := service.accounts.SaveAll(next); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Login never tells an unknown email apart from a wrong password.
func (service *AccountService) Login(email string, password string) (models.Session, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" || password == "" {
		return models.Session{}, ErrRequiredFields
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	accounts, err := service.accounts.List()
	if err != nil {
		return models.Session{}, err
	}
	account, found := findAccount(accounts, normalized)
	if !found {
		_ = bcrypt.CompareHashAndPassword(service.dummyPasswordHash(), []byte(password))
		return models.Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	session := models.NewSession(account)
	if err := service.sessions.Save(session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (service *AccountService) Logout() error {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.sessions.Clear()
}

func (service *AccountService) CurrentSession() (models.Session, bool, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.sessions.Load()
}

// RequireSession returns ErrNotAuthenticated when nobody is logged in.
func (service *AccountService) RequireSession() (models.Session, error) {
	session, found, err := service.CurrentSession()
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, ErrNotAuthenticated
	}
	return session, nil
}

func (service *AccountService) dummyPasswordHash() []byte {
	service.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("caixa-dummy-password"), service.hashCost)
		if err == nil {
			service.dummyHash = hash
		}
	})
	return service.dummyHash
}

func findAccount(accounts []models.Account, email string) (models.Account, bool) {
	for _, account := range accounts {
		if NormalizeEmail(account.Email) == email {
			return account, true
		}
	}
	return models.Account{}, false
}

// ResetPassword replaces the password of an account with a random temporary
// one and returns it. The active session is left untouched.
func (service *AccountService) ResetPassword(email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", ErrRequiredFields
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	accounts, err := service.accounts.List()
	if err != nil {
		return "", err
	}
	index := -1
	for candidate := range accounts {
		if NormalizeEmail(accounts[candidate].Email) == normalized {
			index = candidate
			break
		}
	}
	if index < 0 {
		return "", ErrAccountNotFound
	}

	temporary, err := security.RandomString(TemporaryPasswordLength, temporaryPasswordAlphabet)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}

	next := append([]models.Account(nil), accounts...)
	next[index].PasswordHash = string(hash)
	if err := service.accounts.SaveAll(next); err != nil {
		return "", err
	}
	return temporary, nil
}

// HashPassword is used when importing records that still carry a plaintext password.
func (service *AccountService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
