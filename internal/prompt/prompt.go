package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks yes/no questions on a line-oriented input
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading from in and writing questions to out
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm repeats the question until the answer is yes or no.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprint(p.out, question)

		response, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(strings.ToLower(response))
		switch answer {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}

		if err != nil {
			if err == io.EOF {
				return false, fmt.Errorf("no confirmation received: input closed")
			}
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Password reads a secret from the terminal without echo.
func Password(label string, out io.Writer) (string, error) {
	if !IsTerminal(os.Stdin) {
		return "", fmt.Errorf("password prompt failed: no terminal available")
	}

	fmt.Fprintf(out, "%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
