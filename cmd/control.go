package cmd

import (
	"fmt"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bulkHeadlines introduce a *all* pass
var bulkHeadlines = map[lifecycle.Verb]string{
	lifecycle.VerbStart:   "Attempting to start *all* stopped services:",
	lifecycle.VerbStop:    "Attempting to stop *all* running services:",
	lifecycle.VerbRestart: "Attempting to restart *all* running services:",
	lifecycle.VerbPause:   "Attempting to pause *all* running services:",
}

var (
	startCmd   = newControlCmd(lifecycle.VerbStart, "Start a stopped or paused service", "s")
	stopCmd    = newControlCmd(lifecycle.VerbStop, "Stop a running or paused service", "x")
	restartCmd = newControlCmd(lifecycle.VerbRestart, "Stop a running service and start it again", "r")
	pauseCmd   = newControlCmd(lifecycle.VerbPause, "Pause a service (performed as a stop)", "p")
)

func newControlCmd(verb lifecycle.Verb, short, alias string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s {servicename [servicetype] | *all*}", verb),
		Aliases: []string{alias},
		Short:   short,
		Long: fmt.Sprintf(`%s.

servicename may be given as folder/servicename. servicetype defaults to
MapServer. Use *all* to %s every service whose status allows it, or
--pick to choose the service interactively.`, short, verb),
		Args: serviceArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(cmd, verb, args)
		},
	}
	cmd.Flags().BoolP("pick", "i", false, "Choose the service from the catalog interactively")
	return cmd
}

func runControl(cmd *cobra.Command, verb lifecycle.Verb, args []string) error {
	pick, _ := cmd.Flags().GetBool("pick")

	if len(args) > 0 && lifecycle.IsAllTarget(args[0]) {
		return runBulk(cmd, verb)
	}
	if len(args) == 0 && !pick {
		return usageError(cmd, "Missing required 'servicename'")
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	var svc *arcgis.Service
	if len(args) == 0 {
		svc, err = pickService(cmd, s)
		if err != nil || svc == nil {
			return err
		}
	} else {
		svc = arcgis.ParseService(args[0], optionalArg(args, 1))
	}

	fmt.Fprintln(cmd.OutOrStdout())
	ctx := cmd.Context()
	switch verb {
	case lifecycle.VerbStart:
		s.manager.Start(ctx, svc)
	case lifecycle.VerbStop:
		s.manager.Stop(ctx, svc)
	case lifecycle.VerbPause:
		s.manager.Pause(ctx, svc)
	case lifecycle.VerbRestart:
		s.manager.Restart(ctx, svc)
	}
	return nil
}

func runBulk(cmd *cobra.Command, verb lifecycle.Verb) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n\n", bulkHeadlines[verb])

	report, err := s.manager.All(cmd.Context(), verb)
	if err != nil {
		return fatal(cmd, "No services could be listed.", err)
	}
	if report.Err != nil {
		s.log.Debug("bulk pass had failures", zap.Stringer("verb", verb), zap.Error(report.Err))
	}

	switch {
	case report.Candidates == 0:
		fmt.Fprintln(out, "\nNo service candidates found.")
	case report.Affected == 0:
		fmt.Fprintln(out, color.YellowString("\nNo services were affected (%d candidates processed).", report.Candidates))
	default:
		fmt.Fprintf(out, "\nServices affected: %d\n", report.Affected)
	}
	return nil
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, restartCmd, pauseCmd)
}
