package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/terraincognita07/caixa/internal/app"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

type registerCmd struct {
	env         *Env
	name        string
	email       string
	accountType string
	company     string
	cnpj        string
	category    string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a PF or PJ account" }
func (*registerCmd) Usage() string {
	return `caixa register -name <name> -email <email> [-type PF|PJ] [-company <legal name> -cnpj <cnpj> -category MEI|ME|EPP|LTDA|SA|SLU]

  Creates an account. The password is asked twice on stdin.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account holder name.")
	f.StringVar(&c.email, "email", "", "Login email.")
	f.StringVar(&c.accountType, "type", string(models.AccountTypePJ), "Account type: PF (individual) or PJ (company).")
	f.StringVar(&c.company, "company", "", "Company legal name (PJ only).")
	f.StringVar(&c.cnpj, "cnpj", "", "Company CNPJ, with or without punctuation (PJ only).")
	f.StringVar(&c.category, "category", "", "Company category (PJ only).")
}

func (c *registerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		password, err := c.env.readSecret(c.env.text(application, "prompt.password"))
		if err != nil {
			return err
		}
		confirmation, err := c.env.readSecret(c.env.text(application, "prompt.confirm_password"))
		if err != nil {
			return err
		}

		account, err := application.Services.Accounts.Register(services.RegistrationInput{
			Name:            c.name,
			Email:           c.email,
			Password:        password,
			ConfirmPassword: confirmation,
			AccountType:     models.AccountType(c.accountType),
			CompanyName:     c.company,
			CompanyTaxID:    c.cnpj,
			CompanyCategory: models.CompanyCategory(c.category),
		})
		if err != nil {
			return err
		}
		c.env.say(application, "cli.registered", account.Email, account.Type)
		return nil
	})
}

type loginCmd struct {
	env   *Env
	email string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "start a session" }
func (*loginCmd) Usage() string {
	return `caixa login -email <email>

  Starts the session used by the other commands. The password is read from stdin.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Login email.")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		password, err := c.env.readSecret(c.env.text(application, "prompt.password"))
		if err != nil {
			return err
		}
		session, err := application.Services.Accounts.Login(c.email, password)
		if err != nil {
			return err
		}
		c.env.say(application, "greeting", session.Name)
		return nil
	})
}

type logoutCmd struct {
	env *Env
	yes bool
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "end the current session" }
func (*logoutCmd) Usage() string {
	return `caixa logout [-yes]
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *logoutCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		confirmed, err := c.env.confirm(application, "confirm.logout", c.yes)
		if err != nil {
			return err
		}
		if !confirmed {
			c.env.say(application, "cli.cancelled")
			return nil
		}
		if err := application.Services.Accounts.Logout(); err != nil {
			return err
		}
		c.env.say(application, "cli.logged_out")
		return nil
	})
}

type whoamiCmd struct {
	env *Env
}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "show the current session" }
func (*whoamiCmd) Usage() string {
	return `caixa whoami
`
}

func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		session, found, err := application.Services.Accounts.CurrentSession()
		if err != nil {
			return err
		}
		if !found {
			c.env.say(application, "cli.not_logged_in")
			return nil
		}

		line := fmt.Sprintf("%s <%s> %s", session.Name, session.Email, services.AccountKind(session))
		if session.Company != nil {
			line += fmt.Sprintf(" · %s (%s, CNPJ %s)", session.Company.LegalName, session.Company.Category, session.Company.TaxID)
		}
		fmt.Fprintln(c.env.Stdout, line)
		return nil
	})
}

type resetPasswordCmd struct {
	env   *Env
	email string
}

func (*resetPasswordCmd) Name() string     { return "reset-password" }
func (*resetPasswordCmd) Synopsis() string { return "replace an account password with a temporary one" }
func (*resetPasswordCmd) Usage() string {
	return `caixa reset-password -email <email>

  Prints a random temporary password for a local account that lost its password.
`
}

func (c *resetPasswordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email of the account to reset.")
}

func (c *resetPasswordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.run(ctx, func(_ context.Context, application *app.App) error {
		temporary, err := application.Services.Accounts.ResetPassword(c.email)
		if err != nil {
			return err
		}
		c.env.say(application, "cli.password_reset", services.NormalizeEmail(c.email), temporary)
		return nil
	})
}
