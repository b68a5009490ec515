package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

type addTitleCmd struct {
	env  *Env
	name string
}

func (*addTitleCmd) Name() string     { return "add-title" }
func (*addTitleCmd) Synopsis() string { return "add a job title" }
func (*addTitleCmd) Usage() string {
	return `caixa add-title -name <title>
`
}

func (c *addTitleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Job title name, unique regardless of case.")
}

func (c *addTitleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		title, err := application.Services.Roster.AddTitle(session, c.name)
		if err != nil {
			return err
		}
		c.env.say(application, "cli.title_added", title.Name)
		return nil
	})
}

type titlesCmd struct {
	env *Env
}

func (*titlesCmd) Name() string     { return "titles" }
func (*titlesCmd) Synopsis() string { return "list job titles" }
func (*titlesCmd) Usage() string {
	return `caixa titles
`
}

func (*titlesCmd) SetFlags(*flag.FlagSet) {}

func (c *titlesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		titles, err := application.Services.Roster.Titles(session)
		if err != nil {
			return err
		}
		if len(titles) == 0 {
			c.env.say(application, "cli.no_titles")
			return nil
		}
		writer := tabwriter.NewWriter(c.env.Stdout, 0, 0, 2, ' ', 0)
		for _, title := range titles {
			fmt.Fprintf(writer, "%s\t%s\n", title.Name, title.ID)
		}
		return writer.Flush()
	})
}

type removeTitleCmd struct {
	env *Env
	yes bool
}

func (*removeTitleCmd) Name() string     { return "remove-title" }
func (*removeTitleCmd) Synopsis() string { return "delete a job title; employees keep their copy" }
func (*removeTitleCmd) Usage() string {
	return `caixa remove-title [-yes] <id>
`
}

func (c *removeTitleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *removeTitleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		id, err := singleArg(f, "title id")
		if err != nil {
			return err
		}
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		if err := services.RequireEmployeeAccess(session); err != nil {
			return err
		}
		confirmed, err := c.env.confirm(application, "confirm.remove_title", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}
		if err := application.Services.Roster.RemoveTitle(session, id); err != nil {
			return err
		}
		c.env.say(application, "cli.removed")
		return nil
	})
}

type addEmployeeCmd struct {
	env            *Env
	name           string
	cpf            string
	title          string
	employmentType string
	salary         string
}

func (*addEmployeeCmd) Name() string     { return "add-employee" }
func (*addEmployeeCmd) Synopsis() string { return "add an employee to the roster" }
func (*addEmployeeCmd) Usage() string {
	return `caixa add-employee -name <name> -cpf <cpf> -title <job title> -type <employment type> -salary <amount>

  MEI companies may keep a single employee.
`
}

func (c *addEmployeeCmd) SetFlags(f *flag.FlagSet) {
	types := make([]string, 0, len(models.EmploymentTypes()))
	for _, employmentType := range models.EmploymentTypes() {
		types = append(types, string(employmentType))
	}

	f.StringVar(&c.name, "name", "", "Employee name.")
	f.StringVar(&c.cpf, "cpf", "", "Employee CPF, with or without punctuation.")
	f.StringVar(&c.title, "title", "", "Job title name.")
	f.StringVar(&c.employmentType, "type", string(models.EmploymentCLT), "Employment type: "+strings.Join(types, ", ")+".")
	f.StringVar(&c.salary, "salary", "", "Monthly salary in BRL.")
}

func (c *addEmployeeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		employee, err := application.Services.Roster.AddEmployee(session, services.NewEmployeeInput(
			c.name,
			c.cpf,
			c.title,
			c.employmentType,
			c.salary,
		))
		if err != nil {
			return err
		}
		c.env.say(application, "cli.employee_added", employee.Name)
		return nil
	})
}

type employeesCmd struct {
	env *Env
}

func (*employeesCmd) Name() string     { return "employees" }
func (*employeesCmd) Synopsis() string { return "list employees and the roster counter" }
func (*employeesCmd) Usage() string {
	return `caixa employees
`
}

func (*employeesCmd) SetFlags(*flag.FlagSet) {}

func (c *employeesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		employees, err := application.Services.Roster.Employees(session)
		if err != nil {
			return err
		}
		status, err := application.Services.Roster.Status(session)
		if err != nil {
			return err
		}

		if len(employees) == 0 {
			c.env.say(application, "cli.no_employees")
		} else {
			writer := tabwriter.NewWriter(c.env.Stdout, 0, 0, 2, ' ', 0)
			for _, employee := range employees {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					employee.Name,
					employee.TaxID,
					employee.Title,
					employee.EmploymentType,
					employee.Salary.Format(),
					employee.ID,
				)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
		}

		if status.Limit > 0 {
			c.env.say(application, "roster.counter_capped", status.Count, status.Limit)
		} else {
			c.env.say(application, "roster.counter", status.Count)
		}
		return nil
	})
}

type removeEmployeeCmd struct {
	env *Env
	yes bool
}

func (*removeEmployeeCmd) Name() string     { return "remove-employee" }
func (*removeEmployeeCmd) Synopsis() string { return "delete an employee" }
func (*removeEmployeeCmd) Usage() string {
	return `caixa remove-employee [-yes] <id>
`
}

func (c *removeEmployeeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *removeEmployeeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		id, err := singleArg(f, "employee id")
		if err != nil {
			return err
		}
		session, err := application.Services.Accounts.RequireSession()
		if err != nil {
			return err
		}
		if err := services.RequireEmployeeAccess(session); err != nil {
			return err
		}
		confirmed, err := c.env.confirm(application, "confirm.remove_employee", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}
		if err := application.Services.Roster.RemoveEmployee(session, id); err != nil {
			return err
		}
		c.env.say(application, "cli.removed")
		return nil
	})
}
