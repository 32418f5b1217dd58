package cmd

import (
	"fmt"
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/fatih/color"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

// findService is swapped in tests
var findService = func(services []*arcgis.Service) (int, error) {
	return fuzzyfinder.Find(
		services,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", services[i], services[i].Status)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			s := services[i]
			return fmt.Sprintf("Service: %s\nFolder: %s\nType: %s\nStatus: %s\n", s.ServiceName, s.FolderName, s.Type, s.Status)
		}),
		fuzzyfinder.WithPromptString("Select a service (type to search, ↑↓ to navigate, Enter to select, ESC to cancel)> "),
	)
}

// serviceArgs validates "servicename [servicetype]" style arguments
func serviceArgs(max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > max {
			return usageError(cmd, "Too many arguments: %s", strings.Join(args[max:], " "))
		}
		return nil
	}
}

// pickService lets the user choose a service from the catalog.
// It returns nil when the user cancels.
func pickService(cmd *cobra.Command, s *session) (*arcgis.Service, error) {
	services, err := s.manager.List(cmd.Context(), lifecycle.Filter{})
	if err != nil {
		return nil, fatal(cmd, "Could not list services.", err)
	}
	if len(services) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No Service candidates found.")
		return nil, nil
	}

	idx, err := findService(services)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil, nil
		}
		return nil, fatal(cmd, "Service selection failed.", err)
	}

	selected := services[idx]
	fmt.Fprintf(cmd.OutOrStdout(), "Selected: %s\n", color.CyanString("%s", selected))
	return selected, nil
}
