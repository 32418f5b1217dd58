package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var listOutput string

// listedService is the machine-readable row of list output
type listedService struct {
	Folder string        `json:"folder" yaml:"folder"`
	Name   string        `json:"name" yaml:"name"`
	Type   string        `json:"type" yaml:"type"`
	Status arcgis.Status `json:"status" yaml:"status"`
}

var listCmd = &cobra.Command{
	Use:   "list [likename] [servicetype]",
	Short: "List services and their status",
	Long: `List every service in the root folder and one level of subfolders.

likename keeps services whose name contains it (case-insensitive) or whose
type equals it. servicetype keeps services of exactly that type. likename
may carry a folder prefix (folder/name).`,
	Args: serviceArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch listOutput {
		case "table", "yaml", "json":
		default:
			return usageError(cmd, "Unknown output format '%s' (table, yaml, json)", listOutput)
		}

		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		filter := lifecycle.ParseFilter(optionalArg(args, 0), optionalArg(args, 1))
		services, err := s.manager.List(cmd.Context(), filter)
		if err != nil {
			return fatal(cmd, "No services could be listed.", err)
		}

		out := cmd.OutOrStdout()
		switch listOutput {
		case "json":
			return writeJSON(out, listedServices(services))
		case "yaml":
			return writeYAML(out, listedServices(services))
		}

		fmt.Fprint(out, "\nService Status:\n\n")
		if len(services) == 0 {
			fmt.Fprintln(out, "No Service candidates found.")
			return nil
		}
		if err := renderServiceTable(out, services); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nServices found: %d\n", len(services))
		return nil
	},
}

func listedServices(services []*arcgis.Service) []listedService {
	rows := make([]listedService, 0, len(services))
	for _, svc := range services {
		rows = append(rows, listedService{
			Folder: svc.FolderName,
			Name:   svc.ServiceName,
			Type:   svc.Type,
			Status: svc.Status,
		})
	}
	return rows
}

func renderServiceTable(w io.Writer, services []*arcgis.Service) error {
	title := cases.Title(language.English)

	table := tablewriter.NewWriter(w)
	table.Header("Type", "Service", "Status")
	for _, svc := range services {
		status := title.String(strings.ToLower(svc.Status.String()))
		switch {
		case svc.Status == "":
			status = color.New(color.FgRed).Sprint("Unknown")
		case svc.Status.Is(arcgis.StatusStarted):
			status = color.New(color.FgGreen).Sprint(status)
		case svc.Status.Is(arcgis.StatusStopped):
			status = color.New(color.FgYellow).Sprint(status)
		}
		if err := table.Append(svc.Type, fmt.Sprintf("'%s'", svc.Path()), status); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table, yaml, json)")
}
