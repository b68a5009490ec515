//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// disableEcho turns off terminal echo on file and returns the function that
// restores the previous mode.
func disableEcho(file *os.File) (func(), error) {
	fd := int(file.Fd())
	saved, err := getTermios(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotTerminal, err)
	}

	silent := *saved
	silent.Lflag &^= unix.ECHO
	if err := setTermios(fd, &silent); err != nil {
		return nil, err
	}
	return func() { _ = setTermios(fd, saved) }, nil
}
