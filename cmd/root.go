package cmd

import (
	"context"

	"bitbucket.org/cover42/agsctl/internal/config"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// helpShown is set whenever usage or help text is printed for a run
var helpShown bool

var rootCmd = &cobra.Command{
	Use:   "agsctl",
	Short: "agsctl - Start, stop and inspect services hosted on a GIS server",
	Long: `agsctl drives the administrative REST API of a GIS server. It can start,
stop, restart, delete, list and describe hosted services.

A service is addressed as servicename or folder/servicename, optionally
followed by its type (default MapServer). Common types are MapServer,
FeatureServer, GeocodeServer, GPServer, GeometryServer, ImageServer,
GlobeServer, GeoDataServer and SearchServer.

Use *all* as the service name with start, stop, restart or pause to act on
every service whose current status allows it.

The classic positional form is still accepted, for example:
  agsctl gisserver01 user:admin pwd:secret -stop *all*
  agsctl gisserver01 port:6080 user:admin pwd:secret -delete Parcels MapServer N`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usageError(cmd, "Unknown operation '%s'", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI with args. The returned error maps to an exit code
// through ExitCode.
func Execute(ctx context.Context, args []string) error {
	helpShown = false
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && helpShown {
		return &ExitError{Code: ExitUsage}
	}

	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// CommandNames lists the subcommand names and aliases
func CommandNames() []string {
	names := []string{"help"}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
		names = append(names, c.Aliases...)
	}
	return names
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.String("server", config.DefaultHost, "GIS server host name")
	flags.String("port", config.DefaultPort, "Admin port")
	flags.String("instance", config.DefaultInstance, "Site instance name")
	flags.String("user", "", "Admin user name")
	flags.String("password", "", "Admin password (prompted on a terminal when empty)")
	flags.String("scheme", config.DefaultScheme, "URL scheme (http, https)")
	flags.Duration("timeout", 0, "Per-request HTTP timeout, 0 for none")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.String("config", "", "Config file (default $HOME/.agsctl/config.yaml)")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpShown = true
		defaultHelp(cmd, args)
	})
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, "%v", err)
	})
}
