package cmd

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// ExitError carries the process exit code for an error that has already
// been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error returned by Execute to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFatal
}

// usageError reports bad input and prints the command usage.
func usageError(cmd *cobra.Command, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(cmd.OutOrStdout(), color.RedString("Input error: %s", msg))
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	return &ExitError{Code: ExitUsage, Err: errors.New(msg)}
}

// fatal reports err under headline, followed by any hints it carries.
func fatal(cmd *cobra.Command, headline string, err error) error {
	out := cmd.OutOrStdout()
	if headline == "" {
		headline = err.Error()
	}
	fmt.Fprintln(out, color.RedString("\nError: %s", headline))
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(out, "\nTips: %s\n", hint)
	}
	return &ExitError{Code: ExitFatal, Err: err}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("Error: %v", err))
}
