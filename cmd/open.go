package cmd

import (
	"fmt"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/browser"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [servicename [servicetype]]",
	Short: "Open the admin page of a service in the browser",
	Long: `Open the server's admin page for a service in your default browser and
print the URL. Without a service name the services directory is opened.
No token is placed in the URL; the browser session signs in on its own.`,
	Args: serviceArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		conn := cfg.Connection()

		url := conn.AdminURL("services")
		page := "services directory"
		if len(args) > 0 {
			svc := arcgis.ParseService(args[0], optionalArg(args, 1))
			url = conn.AdminURL(svc.ResourcePath())
			page = svc.String()
		}
		openURL(cmd, url, page)
		return nil
	},
}

// openURL prints the URL and opens it in the browser
func openURL(cmd *cobra.Command, url, page string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Opening %s...\n", page)
	fmt.Fprintf(out, "URL: %s\n", url)

	if err := browser.Open(cmd.Context(), url); err != nil {
		fmt.Fprintf(out, "\nWarning: Failed to open browser: %v\n", err)
		fmt.Fprintln(out, "Please copy and paste the URL above into your browser.")
		return
	}
	fmt.Fprintln(out, "✓ Opened in browser")
}

func init() {
	rootCmd.AddCommand(openCmd)
}
