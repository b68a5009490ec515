package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/caixa/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func newTestAccountService() (*AccountService, *stubAccountRepo, *stubSessionRepo) {
	accounts := &stubAccountRepo{}
	sessions := &stubSessionRepo{}
	service := NewAccountService(accounts, sessions)
	service.hashCost = bcrypt.MinCost
	return service, accounts, sessions
}

func validPJInput() RegistrationInput {
	return RegistrationInput{
		Name:            "Loja da Bia",
		Email:           "Bia@Loja.com ",
		Password:        "1234",
		ConfirmPassword: "1234",
		AccountType:     models.AccountTypePJ,
		CompanyName:     "Loja da Bia ME",
		CompanyTaxID:    "12.345.678/0001-90",
		CompanyCategory: models.CompanyMEI,
	}
}

func TestRegisterStoresFoldedEmailAndHashedPassword(t *testing.T) {
	service, accounts, _ := newTestAccountService()

	account, err := service.Register(validPJInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Email != "bia@loja.com" {
		t.Fatalf("expected folded email, got %q", account.Email)
	}
	if account.Company == nil || account.Company.TaxID != "12345678000190" {
		t.Fatalf("expected CNPJ digits, got %+v", account.Company)
	}
	if len(accounts.accounts) != 1 || accounts.saveCalls != 1 {
		t.Fatalf("expected one saved account, got %d after %d saves", len(accounts.accounts), accounts.saveCalls)
	}
	if bcrypt.CompareHashAndPassword([]byte(accounts.accounts[0].PasswordHash), []byte("1234")) != nil {
		t.Fatal("expected stored bcrypt hash of the password")
	}
}

func TestRegisterValidationOrder(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*RegistrationInput)
		expected error
	}{
		{name: "missing name", mutate: func(in *RegistrationInput) { in.Name = " "; in.Password = "1" }, expected: ErrRequiredFields},
		{name: "short password", mutate: func(in *RegistrationInput) { in.Password = "123"; in.ConfirmPassword = "999" }, expected: ErrPasswordTooShort},
		{name: "mismatch", mutate: func(in *RegistrationInput) { in.ConfirmPassword = "4321"; in.CompanyName = "" }, expected: ErrPasswordMismatch},
		{name: "bad type", mutate: func(in *RegistrationInput) { in.AccountType = "XX" }, expected: ErrInvalidAccountType},
		{name: "company missing", mutate: func(in *RegistrationInput) { in.CompanyName = ""; in.CompanyTaxID = "1" }, expected: ErrCompanyFieldsRequired},
		{name: "cnpj digits", mutate: func(in *RegistrationInput) { in.CompanyTaxID = "12.345.678/0001"; in.CompanyCategory = "XYZ" }, expected: ErrInvalidCNPJ},
		{name: "category", mutate: func(in *RegistrationInput) { in.CompanyCategory = "XYZ" }, expected: ErrInvalidCompanyCategory},
	}

	for _, tc := range cases {
		service, accounts, _ := newTestAccountService()
		input := validPJInput()
		tc.mutate(&input)

		_, err := service.Register(input)
		if !errors.Is(err, tc.expected) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected validation category, got %v", tc.name, err)
		}
		if accounts.saveCalls != 0 {
			t.Fatalf("%s: expected no write on rejected registration", tc.name)
		}
	}
}

func TestRegisterRejectsCaseFoldedDuplicateEmail(t *testing.T) {
	service, accounts, _ := newTestAccountService()
	if _, err := service.Register(validPJInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := validPJInput()
	second.Email = "BIA@LOJA.COM"
	_, err := service.Register(second)
	if !errors.Is(err, ErrDuplicateEmail) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected store unchanged, got %d accounts", len(accounts.accounts))
	}
}

func TestRegisterPFDropsCompanyInput(t *testing.T) {
	service, _, _ := newTestAccountService()
	input := validPJInput()
	input.AccountType = "pf"
	input.CompanyTaxID = "bad"

	account, err := service.Register(input)
	if err != nil {
		t.Fatalf("register PF: %v", err)
	}
	if account.Type != models.AccountTypePF || account.Company != nil {
		t.Fatalf("expected PF account without company, got %+v", account)
	}
}

func TestLoginErrorsAreIdenticalForUnknownEmailAndWrongPassword(t *testing.T) {
	service, _, sessions := newTestAccountService()
	if _, err := service.Register(validPJInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := service.Login("nobody@loja.com", "1234")
	_, wrongErr := service.Login("bia@loja.com", "9999")
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical messages, got %q and %q", unknownErr, wrongErr)
	}
	if sessions.session != nil {
		t.Fatal("expected no session after failed logins")
	}

	if _, err := service.Login(" ", "1234"); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected ErrRequiredFields for empty email, got %v", err)
	}
}

func TestLoginPersistsSessionAndLogoutClearsIt(t *testing.T) {
	service, _, _ := newTestAccountService()
	if _, err := service.Register(validPJInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	session, err := service.Login("  BIA@loja.com", "1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Email != "bia@loja.com" || session.Company == nil || session.Company.Category != models.CompanyMEI {
		t.Fatalf("unexpected session %+v", session)
	}

	current, found, err := service.CurrentSession()
	if err != nil || !found || current.Email != session.Email {
		t.Fatalf("expected current session, got %+v found=%v err=%v", current, found, err)
	}

	if err := service.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := service.Logout(); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
	if _, err := service.RequireSession(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLoginDefaultsLegacyAccountTypeToPJ(t *testing.T) {
	service, accounts, _ := newTestAccountService()
	hash, err := bcrypt.GenerateFromPassword([]byte("abcd"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	accounts.accounts = []models.Account{{Name: "Antiga", Email: "antiga@x.com", PasswordHash: string(hash)}}

	session, err := service.Login("antiga@x.com", "abcd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Type != models.AccountTypePJ {
		t.Fatalf("expected PJ default, got %q", session.Type)
	}
}

func TestRegisterPropagatesRepositoryErrors(t *testing.T) {
	service, accounts, _ := newTestAccountService()
	accounts.listErr = errStubRejected

	if _, err := service.Register(validPJInput()); !errors.Is(err, errStubRejected) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestResetPasswordIssuesTemporaryPassword(t *testing.T) {
	service, accounts, _ := newTestAccountService()
	if _, err := service.Register(validPJInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	temporary, err := service.ResetPassword(" BIA@loja.com")
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if len(temporary) != TemporaryPasswordLength {
		t.Fatalf("expected %d characters, got %q", TemporaryPasswordLength, temporary)
	}
	for _, char := range temporary {
		if !strings.ContainsRune(temporaryPasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", temporary, char)
		}
	}
	if accounts.saveCalls != 2 {
		t.Fatalf("expected reset to save once more, got %d saves", accounts.saveCalls)
	}

	if _, err := service.Login("bia@loja.com", "1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := service.Login("bia@loja.com", temporary); err != nil {
		t.Fatalf("login with temporary password: %v", err)
	}
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	service, accounts, _ := newTestAccountService()

	if _, err := service.ResetPassword("ninguem@x.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := service.ResetPassword(" "); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected ErrRequiredFields, got %v", err)
	}
	if accounts.saveCalls != 0 {
		t.Fatalf("expected no writes, got %d", accounts.saveCalls)
	}
}
