package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var umsCmd = &cobra.Command{
	Use:   "ums",
	Short: "Manages persisted UMS instances.",
}

var umsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all UMS instances visible to the session.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		instances, err := client.ListUMS(ctx)
		if err != nil {
			slog.Error("Failed to list UMS instances", "error", err)
			os.Exit(1)
		}
		printJSON(instances)
	},
}

var umsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Shows one UMS instance.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		instance, err := client.GetUMS(ctx, args[0])
		if err != nil {
			slog.Error("Failed to fetch UMS instance", "id", args[0], "error", err)
			os.Exit(1)
		}
		printJSON(instance)
	},
}

var umsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Updates fields of a persisted UMS instance.",
	Long: `Settings edits are saved explicitly with this command, not per change:
collect the new values and submit them together.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		fields := map[string]any{}
		for flag, key := range map[string]string{
			"name":        "umsName",
			"description": "umsDescription",
			"tagline":     "umsTagline",
			"website":     "umsWebsite",
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				fields[key] = v
			}
		}
		if len(fields) == 0 {
			slog.Error("Nothing to update; pass at least one field flag.")
			os.Exit(1)
		}

		updated, err := client.UpdateUMS(ctx, args[0], fields)
		if err != nil {
			logAndAudit(s, "UpdateUMS", args[0], "fatal", "Failed to update UMS instance", "error", err)
		}
		logAndAudit(s, "UpdateUMS", args[0], "info", "UMS instance updated.")
		printJSON(updated)
	},
}

var umsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a persisted UMS instance.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		if err := client.DeleteUMS(ctx, args[0]); err != nil {
			logAndAudit(s, "DeleteUMS", args[0], "fatal", "Failed to delete UMS instance", "error", err)
		}
		logAndAudit(s, "DeleteUMS", args[0], "info", "UMS instance deleted.")
		fmt.Println("Deleted.")
	},
}

func init() {
	umsUpdateCmd.Flags().String("name", "", "New institution name.")
	umsUpdateCmd.Flags().String("description", "", "New description.")
	umsUpdateCmd.Flags().String("tagline", "", "New tagline.")
	umsUpdateCmd.Flags().String("website", "", "New website URL.")

	umsCmd.AddCommand(umsListCmd)
	umsCmd.AddCommand(umsGetCmd)
	umsCmd.AddCommand(umsUpdateCmd)
	umsCmd.AddCommand(umsDeleteCmd)
}
