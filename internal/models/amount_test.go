package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountAcceptsBrazilianNotation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1500.50":    "1500.5",
		"1500,50":    "1500.5",
		"1.500,50":   "1500.5",
		" R$ 40,00 ": "40",
		"-5":         "-5",
		"0":          "0",
		"0.1":        "0.1",
	}
	for raw, expected := range cases {
		amount, err := ParseAmount(raw)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", raw, err)
		}
		if amount.String() != expected {
			t.Fatalf("ParseAmount(%q) = %s, expected %s", raw, amount.String(), expected)
		}
	}
}

func TestParseAmountRejectsNonNumeric(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "abc", "R$", "1,2,3"} {
		if _, err := ParseAmount(raw); !errors.Is(err, ErrAmountNotNumeric) {
			t.Fatalf("ParseAmount(%q): expected ErrAmountNotNumeric, got %v", raw, err)
		}
	}
}

func TestAmountArithmeticIsExact(t *testing.T) {
	t.Parallel()

	total := Amount{}
	for index := 0; index < 10; index++ {
		total = total.Add(MustParseAmount("0.1"))
	}
	if !total.Equal(NewAmount(1)) {
		t.Fatalf("expected exact 1, got %s", total)
	}
	if balance := NewAmount(100).Sub(NewAmount(40)); balance.String() != "60" {
		t.Fatalf("expected 60, got %s", balance)
	}
}

func TestAmountFormatUsesBRL(t *testing.T) {
	t.Parallel()

	if formatted := MustParseAmount("1500,5").Format(); formatted != "R$1.500,50" {
		t.Fatalf("expected R$1.500,50, got %q", formatted)
	}
	if formatted := (Amount{}).Format(); formatted != "R$0,00" {
		t.Fatalf("expected R$0,00, got %q", formatted)
	}
}

func TestAmountJSONIsBareNumber(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(struct {
		Value Amount `json:"valor"`
	}{Value: MustParseAmount("40,25")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"valor":40.25}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}

	var decoded struct {
		Value Amount `json:"valor"`
	}
	for _, raw := range []string{`{"valor":"12.5"}`, `{"valor":12.5}`} {
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if decoded.Value.String() != "12.5" {
			t.Fatalf("unmarshal %s: got %s", raw, decoded.Value)
		}
	}
	if err := json.Unmarshal([]byte(`{"valor":"doze"}`), &decoded); err == nil {
		t.Fatal("expected error for non-numeric stored amount")
	}
}

func TestParseAmountRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"1e50000000", "1e13", "1000000000000,01", "-2e12", "0.0000000000001"} {
		if _, err := ParseAmount(raw); !errors.Is(err, ErrAmountOutOfRange) {
			t.Fatalf("ParseAmount(%q): expected ErrAmountOutOfRange, got %v", raw, err)
		}
	}
	if amount, err := ParseAmount("1.000.000.000.000,00"); err != nil || !amount.Equal(NewAmount(MaxAmount)) {
		t.Fatalf("expected the maximum amount to parse, got %s err=%v", amount, err)
	}
}

func TestAmountUnmarshalRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	var amount Amount
	for _, raw := range []string{`1e50000000`, `"1e50000000"`, `1e13`} {
		if err := json.Unmarshal([]byte(raw), &amount); !errors.Is(err, ErrAmountOutOfRange) {
			t.Fatalf("Unmarshal(%s): expected ErrAmountOutOfRange, got %v", raw, err)
		}
	}
}

func TestAmountFormatBeyondInt64Cents(t *testing.T) {
	t.Parallel()

	if formatted := NewAmount(decimal.New(1, 17)).Format(); formatted != "R$100.000.000.000.000.000,00" {
		t.Fatalf("unexpected large format %q", formatted)
	}
	if formatted := NewAmount(decimal.New(-25, 17)).Format(); formatted != "-R$2.500.000.000.000.000.000,00" {
		t.Fatalf("unexpected negative large format %q", formatted)
	}
	if formatted := MustParseAmount("100000000000").Format(); formatted != "R$100.000.000.000,00" {
		t.Fatalf("unexpected format %q", formatted)
	}
}
