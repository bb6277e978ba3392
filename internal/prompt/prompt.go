// Package prompt reads secrets from the terminal without echo, falling
// back to a plain line read when stdin is not a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// ErrMismatch is returned when the confirmation differs from the first entry.
var ErrMismatch = errors.New("passwords do not match")

// Password prints label to w and reads one password from fd. When fd is
// not a terminal the line is read from r instead.
func Password(fd int, r *bufio.Reader, w io.Writer, label string) ([]byte, error) {
	if _, err := fmt.Fprint(w, label+": "); err != nil {
		return nil, err
	}

	if !isTerminal(fd) {
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// ConfirmedPassword asks twice and fails unless both entries match and are
// non-empty.
func ConfirmedPassword(fd int, r *bufio.Reader, w io.Writer) ([]byte, error) {
	first, err := Password(fd, r, w, "Password")
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, errors.New("password must not be empty")
	}

	second, err := Password(fd, r, w, "Repeat password")
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, ErrMismatch
	}
	return first, nil
}

// Wipe zeroes b so the secret does not linger after use.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
