package models

import "time"

type JobTitle struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

type EmploymentType string

const (
	EmploymentCLT        EmploymentType = "CLT"
	EmploymentPJ         EmploymentType = "PJ"
	EmploymentIntern     EmploymentType = "Estagio"
	EmploymentTemporary  EmploymentType = "Temporario"
	EmploymentFreelancer EmploymentType = "Autonomo"
)

func EmploymentTypes() []EmploymentType {
	return []EmploymentType{EmploymentCLT, EmploymentPJ, EmploymentIntern, EmploymentTemporary, EmploymentFreelancer}
}

func (t EmploymentType) Valid() bool {
	for _, known := range EmploymentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Employee keeps a copy of the job title name; titles can be removed without
// touching employees that reference them.
type Employee struct {
	ID             string         `json:"id"`
	Name           string         `json:"nome"`
	TaxID          string         `json:"cpf"`
	Title          string         `json:"cargo"`
	EmploymentType EmploymentType `json:"vinculo"`
	Salary         Amount         `json:"salario"`
	CreatedAt      time.Time      `json:"data"`
}
