package services

import (
	"github.com/shopspring/decimal"
	"github.com/terraincognita07/caixa/internal/models"
)

type Summary struct {
	TotalIncome  models.Amount `json:"totalIncome"`
	TotalExpense models.Amount `json:"totalExpense"`
	Balance      models.Amount `json:"balance"`
}

// ChartData holds the income/expense proportions of the dashboard donut.
type ChartData struct {
	Income         models.Amount `json:"income"`
	Expense        models.Amount `json:"expense"`
	IncomeShare    float64       `json:"incomeShare"`
	ExpenseShare   float64       `json:"expenseShare"`
	IncomePercent  int           `json:"incomePercent"`
	ExpensePercent int           `json:"expensePercent"`
	NoData         bool          `json:"noData"`
}

// Summarize folds the whole ledger; nothing is cached between calls.
func Summarize(entries []models.LedgerEntry) Summary {
	var summary Summary
	for _, entry := range entries {
		switch entry.Kind {
		case models.EntryIncome:
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		case models.EntryExpense:
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

func BuildChart(summary Summary) ChartData {
	chart := ChartData{Income: summary.TotalIncome, Expense: summary.TotalExpense}

	total := summary.TotalIncome.Add(summary.TotalExpense)
	if total.IsZero() {
		chart.NoData = true
		return chart
	}

	incomeShare := summary.TotalIncome.Decimal().Div(total.Decimal())
	expenseShare := summary.TotalExpense.Decimal().Div(total.Decimal())
	chart.IncomeShare = incomeShare.Round(4).InexactFloat64()
	chart.ExpenseShare = expenseShare.Round(4).InexactFloat64()
	chart.IncomePercent = int(incomeShare.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	chart.ExpensePercent = 100 - chart.IncomePercent
	return chart
}
