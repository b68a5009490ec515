package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// amountField accepts an amount sent either as a JSON number or a string.
type amountField string

func (field *amountField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*field = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*field = amountField(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*field = amountField(number.String())
	return nil
}

type registerInput struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	AccountType     string `json:"account_type" form:"account_type"`
	CompanyName     string `json:"company_name" form:"company_name"`
	CompanyTaxID    string `json:"company_tax_id" form:"company_tax_id"`
	CompanyCategory string `json:"company_category" form:"company_category"`
}

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type entryInput struct {
	Description string      `json:"description" form:"description"`
	Amount      amountField `json:"amount" form:"amount"`
	Kind        string      `json:"kind" form:"kind"`
}

type titleInput struct {
	Name string `json:"name" form:"name"`
}

type employeeInput struct {
	Name           string      `json:"name" form:"name"`
	TaxID          string      `json:"tax_id" form:"tax_id"`
	Title          string      `json:"title" form:"title"`
	EmploymentType string      `json:"employment_type" form:"employment_type"`
	Salary         amountField `json:"salary" form:"salary"`
}

type themeInput struct {
	DarkTheme *bool `json:"dark_theme" form:"dark_theme"`
}

func parseBody[T any](c *fiber.Ctx) (T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return input, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return input, nil
}
