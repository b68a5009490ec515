package models

import "time"

// EntryKind values match the browser records ("entrada"/"saida").
type EntryKind string

const (
	EntryIncome  EntryKind = "entrada"
	EntryExpense EntryKind = "saida"
)

func (k EntryKind) Valid() bool {
	return k == EntryIncome || k == EntryExpense
}

// ParseEntryKind accepts both the English and the stored Portuguese spelling.
func ParseEntryKind(raw string) (EntryKind, bool) {
	switch raw {
	case "income", string(EntryIncome):
		return EntryIncome, true
	case "expense", string(EntryExpense):
		return EntryExpense, true
	default:
		return "", false
	}
}

func (k EntryKind) Label() string {
	switch k {
	case EntryIncome:
		return "income"
	case EntryExpense:
		return "expense"
	default:
		return string(k)
	}
}

type LedgerEntry struct {
	ID          string    `json:"id"`
	Description string    `json:"descricao"`
	Amount      Amount    `json:"valor"`
	Kind        EntryKind `json:"tipo"`
	CreatedAt   time.Time `json:"data"`
}
