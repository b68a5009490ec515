package db

import (
	"errors"
	"testing"
)

func TestDecodeLedgerReadsBrowserRecords(t *testing.T) {
	raw := `[{"id":"lq2x9k3ab","descricao":"Venda","valor":100,"tipo":"entrada","data":"2026-02-06T14:30:00.000Z"},
	{"id":"lq2x9k3ac","descricao":"Aluguel","valor":40.5,"tipo":"saida","data":"2026-02-07T09:00:00.000Z"}]`

	entries, err := DecodeLedger(SharedLedgerKey, raw)
	if err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Amount.String() != "40.5" || entries[1].Kind != "saida" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}
	if entries[0].CreatedAt.Day() != 6 {
		t.Fatalf("expected ISO timestamp to parse, got %v", entries[0].CreatedAt)
	}
}

func TestDecodeLedgerReportsOffendingIndex(t *testing.T) {
	raw := `[{"id":"a","descricao":"Venda","valor":10,"tipo":"entrada"},{"id":"b","descricao":"Erro","valor":0,"tipo":"saida"}]`

	_, err := DecodeLedger(SharedLedgerKey, raw)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Key != SharedLedgerKey || decodeErr.Index != 1 {
		t.Fatalf("expected transacoes[1], got %s[%d]", decodeErr.Key, decodeErr.Index)
	}
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	checks := map[string]func() error{
		"ledger":   func() error { _, err := DecodeLedger("transacoes", `{"id":1}`); return err },
		"accounts": func() error { _, err := DecodeAccounts("usuarios", `not json`); return err },
		"session":  func() error { _, err := DecodeSession("sessao-usuario", `[]`); return err },
		"theme":    func() error { _, err := DecodeDarkTheme("tema-escuro", `"yes"`); return err },
		"amount":   func() error { _, err := DecodeLedger("transacoes", `[{"id":"a","descricao":"x","valor":"abc","tipo":"entrada"}]`); return err },
	}
	for name, check := range checks {
		var decodeErr *DecodeError
		if err := check(); !errors.As(err, &decodeErr) || decodeErr.Index != -1 {
			t.Fatalf("%s: expected whole-value DecodeError, got %v", name, err)
		}
	}
}

func TestDecodeAccountsRejectsCaseFoldedDuplicates(t *testing.T) {
	raw := `[{"nome":"Ana","email":"ana@x.com","senhaHash":"h1","tipoConta":"PF"},
	{"nome":"Ana 2","email":"ANA@x.com","senhaHash":"h2","tipoConta":"PF"}]`

	_, err := DecodeAccounts(AccountsKey, raw)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Index != 1 {
		t.Fatalf("expected duplicate at index 1, got %v", err)
	}
}

func TestDecodeAccountsAcceptsLegacyMissingType(t *testing.T) {
	raw := `[{"nome":"Loja","email":"loja@x.com","senhaHash":"h","empresa":{"nome":"Loja LTDA","cnpj":"12345678000190","tipo":"MEI"}}]`

	accounts, err := DecodeAccounts(AccountsKey, raw)
	if err != nil {
		t.Fatalf("decode accounts: %v", err)
	}
	if accounts[0].Type != "" || accounts[0].Company == nil || accounts[0].Company.Category != "MEI" {
		t.Fatalf("unexpected account %+v", accounts[0])
	}
}

func TestDecodeEmployeesAllowsZeroSalaryButNotNegative(t *testing.T) {
	if _, err := DecodeEmployees("funcionarios-a@x.com", `[{"id":"e1","nome":"Bia","cpf":"12345678901","cargo":"Caixa","vinculo":"CLT","salario":0}]`); err != nil {
		t.Fatalf("expected zero salary to decode, got %v", err)
	}
	if _, err := DecodeEmployees("funcionarios-a@x.com", `[{"id":"e1","nome":"Bia","cpf":"1","cargo":"Caixa","vinculo":"CLT","salario":-1}]`); err == nil {
		t.Fatal("expected negative salary to fail")
	}
}

func TestDecodeNullListIsEmpty(t *testing.T) {
	titles, err := DecodeTitles("cargos-a@x.com", `null`)
	if err != nil {
		t.Fatalf("decode null titles: %v", err)
	}
	if titles == nil || len(titles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", titles)
	}
}

func TestClassifyKey(t *testing.T) {
	cases := map[string]KeyKind{
		"usuarios":               KeyAccounts,
		"sessao-usuario":         KeySession,
		"transacoes":             KeyLedger,
		"transacoes-ana@x.com":   KeyLedger,
		"cargos-ana@x.com":       KeyTitles,
		"funcionarios-ana@x.com": KeyEmployees,
		"tema-escuro":            KeyDarkTheme,
		"cargos-":                KeyUnknown,
		"outra-coisa":            KeyUnknown,
	}
	for key, expected := range cases {
		if got := ClassifyKey(key); got != expected {
			t.Fatalf("ClassifyKey(%q) = %v, expected %v", key, got, expected)
		}
	}
}

func TestValidateValueRejectsUnknownKeys(t *testing.T) {
	if err := ValidateValue("outra-coisa", `1`); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if err := ValidateValue("tema-escuro", `true`); err != nil {
		t.Fatalf("expected theme to validate, got %v", err)
	}
}
