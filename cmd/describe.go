package cmd

import (
	"fmt"
	"io"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var describeOutput string

var describeCmd = &cobra.Command{
	Use:   "describe [likename] [servicetype]",
	Short: "Show the configuration of matching services",
	Long: `Describe every service matching likename and servicetype. Matching works
as for list, except that servicetype is compared case-insensitively.`,
	Args: serviceArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch describeOutput {
		case "text", "yaml", "json":
		default:
			return usageError(cmd, "Unknown output format '%s' (text, yaml, json)", describeOutput)
		}

		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		filter := lifecycle.ParseFilter(optionalArg(args, 0), optionalArg(args, 1))
		filter.FoldType = true

		services, err := s.manager.DescribeMatching(cmd.Context(), filter)
		if err != nil && services == nil {
			return fatal(cmd, "No services could be listed.", err)
		}

		out := cmd.OutOrStdout()
		switch describeOutput {
		case "json":
			return writeJSON(out, services)
		case "yaml":
			return writeYAML(out, services)
		}

		fmt.Fprintln(out, "\nService Description(s):")
		for _, svc := range services {
			writeDescription(out, svc)
		}
		if err != nil {
			fmt.Fprintln(out, color.RedString("\nSome services could not be described: %v", err))
		}
		if len(services) == 0 {
			fmt.Fprintln(out, "\nNo Service candidates found.")
			return nil
		}
		fmt.Fprintf(out, "\nServices found: %d\n", len(services))
		return nil
	},
}

func writeDescription(w io.Writer, s *arcgis.Service) {
	fmt.Fprintf(w, "\nService Name: '%s'\n", s.Path())
	fields := []struct {
		label string
		value any
	}{
		{"Type", s.Type},
		{"Status", s.Status},
		{"Description", s.Description},
		{"Capabilities", s.Capabilities},
		{"Cluster Name", s.ClusterName},
		{"Min Instances Per Node", s.MinInstancesPerNode},
		{"Max Instances Per Node", s.MaxInstancesPerNode},
		{"Instances per Container", s.InstancesPerContainer},
		{"Max Wait Time", s.MaxWaitTime},
		{"Max Startup Time", s.MaxStartupTime},
		{"Max Idle Time", s.MaxIdleTime},
		{"Max Usage Time", s.MaxUsageTime},
		{"Load Balancing", s.LoadBalancing},
		{"Isolation Level", s.IsolationLevel},
		{"Configured State", s.ConfiguredState},
		{"Recycle Interval", s.RecycleInterval},
		{"Recycle Start Time", s.RecycleStartTime},
		{"Keep Alive Interval", s.KeepAliveInterval},
		{"IsDefault", s.IsDefault},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "\t%s: %v\n", f.label, f.value)
	}

	fmt.Fprintln(w, "\tExtensions: ")
	for _, e := range s.Extensions {
		fmt.Fprintf(w, "\t\ttypeName: %s\n", e.TypeName)
		fmt.Fprintf(w, "\t\tcapabilities: %s\n", e.Capabilities)
		fmt.Fprintf(w, "\t\tenabled: %s\n", e.Enabled)
		fmt.Fprintf(w, "\t\tmaxUploadFileSize: %d\n", e.MaxUploadFileSize)
		fmt.Fprintf(w, "\t\tallowedUploadFileTypes: %s\n", e.AllowedUploadFileTypes)
		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "text", "Output format (text, yaml, json)")
}
