package cmd

import (
	"fmt"
	"strings"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"bitbucket.org/cover42/agsctl/internal/lifecycle"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete servicename servicetype",
	Short: "Delete a service",
	Long: `Delete a service from the server. A running service is stopped first.

Both servicename (or folder/servicename) and servicetype are required. You
are asked to confirm unless --yes is given.`,
	Args: serviceArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usageError(cmd, "Missing required 'servicename'")
		}
		if len(args) < 2 || !strings.Contains(strings.ToLower(args[1]), "server") {
			return usageError(cmd, "Missing or invalid 'servicetype'")
		}

		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		svc := arcgis.ParseService(args[0], args[1])
		fmt.Fprintln(cmd.OutOrStdout())

		res, err := s.manager.Delete(cmd.Context(), svc, lifecycle.DeleteOptions{SkipConfirm: deleteYes})
		if err != nil {
			return fatal(cmd, deleteFailure(svc, err), err)
		}

		out := cmd.OutOrStdout()
		switch res.Outcome {
		case lifecycle.DeleteCancelled:
			fmt.Fprintln(out, color.YellowString("\n%s", res.Message))
		case lifecycle.DeleteAlreadyDeleted:
			fmt.Fprintf(out, "Attempting to delete %s: %s\n", svc, color.YellowString("%s", res.Message))
		default:
			fmt.Fprintf(out, "Attempting to delete %s: %s\n", svc, color.GreenString("%s", res.Message))
		}
		return nil
	},
}

func deleteFailure(svc *arcgis.Service, err error) string {
	switch {
	case errors.Is(err, arcgis.ErrServiceNotFound):
		return fmt.Sprintf("%s: Service not found.", svc)
	case errors.Is(err, lifecycle.ErrStopBeforeDelete):
		return fmt.Sprintf("%s: Could not be stopped!", svc)
	case errors.Is(err, lifecycle.ErrDeleteBlocked):
		return fmt.Sprintf("%s: %v", svc, err)
	case errors.Is(err, lifecycle.ErrStatusUnknown):
		return fmt.Sprintf("%s: Could not determine status.", svc)
	case errors.Is(err, lifecycle.ErrDeleteUnverified):
		return fmt.Sprintf("%s: Could not be deleted!", svc)
	default:
		return fmt.Sprintf("Error deleting service! %v", err)
	}
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
