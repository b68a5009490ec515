package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/caixa/internal/app"
)

func (env *Env) lineReader() *bufio.Reader {
	if env.reader == nil {
		env.reader = bufio.NewReader(env.Stdin)
	}
	return env.reader
}

func (env *Env) readLine() (string, error) {
	line, err := env.lineReader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret prompts for a password, hiding the input when stdin is a terminal.
func (env *Env) readSecret(prompt string) (string, error) {
	fmt.Fprint(env.Stdout, prompt)
	file, ok := env.Stdin.(*os.File)
	if !ok {
		return env.readLine()
	}

	restore, err := disableEcho(file)
	if errors.Is(err, errNotTerminal) {
		return env.readLine()
	}
	if err != nil {
		return "", err
	}
	defer restore()

	secret, err := env.readLine()
	fmt.Fprintln(env.Stdout)
	return secret, err
}

// confirm asks the question under key unless skip is set. Only an explicit yes confirms.
func (env *Env) confirm(application *app.App, key string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	fmt.Fprint(env.Stdout, env.text(application, key)+env.text(application, "prompt.yes_no"))
	answer, err := env.readLine()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
