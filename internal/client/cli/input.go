package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// input is where the CLI gets answers from. terminalInput is the real one.
type input interface {
	Line(label string) (string, error)
	Secret(label string) (string, error)
}

type terminalInput struct {
	r *bufio.Reader
	w io.Writer

	// readSecret defaults to term.ReadPassword on stdin.
	readSecret func() ([]byte, error)
}

// newTerminalInput reads answers from r, which the REPL shares so neither
// side buffers input meant for the other.
func newTerminalInput(r *bufio.Reader, w io.Writer) *terminalInput {
	return &terminalInput{
		r: r,
		w: w,
		readSecret: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// Line shows "label: " and returns the trimmed answer. Input cut short by
// EOF still counts as an answer.
func (t *terminalInput) Line(label string) (string, error) {
	if _, err := fmt.Fprintf(t.w, "%s: ", label); err != nil {
		return "", err
	}
	s, err := t.r.ReadString('\n')
	switch {
	case err == nil, errors.Is(err, io.EOF) && s != "":
		return strings.TrimSpace(s), nil
	default:
		return "", err
	}
}

// Secret reads without echo.
func (t *terminalInput) Secret(label string) (string, error) {
	if _, err := fmt.Fprintf(t.w, "%s: ", label); err != nil {
		return "", err
	}
	b, err := t.readSecret()
	fmt.Fprintln(t.w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
