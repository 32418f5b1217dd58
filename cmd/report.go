package cmd

import (
	"fmt"
	"io"

	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/fatih/color"
)

// consoleReporter prints lifecycle progress one line per service
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out}
}

func (r *consoleReporter) Notice(msg string) {
	fmt.Fprintln(r.out, color.YellowString("%s", msg))
}

func (r *consoleReporter) Result(res lifecycle.Result) {
	fmt.Fprintf(r.out, "Attempting to %s %s: %s\n", res.Verb, res.Service, outcomeColor(res.Outcome).Sprint(res.Message))
}

func (r *consoleReporter) Restart(res lifecycle.RestartResult) {
	if res.Succeeded() {
		return
	}
	fmt.Fprintln(r.out, color.RedString("Restart of %s did not complete (%s).", res.Service, res.Phase))
}

func outcomeColor(o lifecycle.Outcome) *color.Color {
	switch o {
	case lifecycle.OutcomeSucceeded:
		return color.New(color.FgGreen)
	case lifecycle.OutcomeSkipped:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
