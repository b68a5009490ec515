package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCategoriesWrapFieldErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrInvalidCNPJ, ErrInvalidAmount, ErrInvalidCPF, ErrInvalidSnapshot} {
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected %v to wrap ErrValidation", err)
		}
	}
	for _, err := range []error{ErrDuplicateEmail, ErrDuplicateTitle} {
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected %v to wrap ErrConflict", err)
		}
	}
	if errors.Is(ErrCapReached, ErrConflict) || errors.Is(ErrInvalidCredentials, ErrValidation) {
		t.Fatal("expected standalone sentinels to stay outside the categories")
	}
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	cases := map[error]string{
		fmt.Errorf("add: %w", ErrInvalidCPF): "invalid_cpf",
		ErrDuplicateEmail:                    "duplicate_email",
		ErrValidation:                        "invalid_request",
		ErrCapReached:                        "cap_reached",
		errors.New("disk full"):              "",
	}
	for err, expected := range cases {
		if code := ErrorCode(err); code != expected {
			t.Fatalf("ErrorCode(%v) = %q, expected %q", err, code, expected)
		}
	}
}
