package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticates a root operator and persists the session token.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			slog.Error("Both --email and --password are required.")
			os.Exit(1)
		}

		s := newStore()
		client := newClient(s)

		token, err := client.RootLogin(ctx, email, password)
		if err != nil {
			logAndAudit(s, "Login", email, "fatal", "Login failed", "error", err)
		}
		if err := s.SaveToken(token); err != nil {
			logAndAudit(s, "Login", email, "fatal", "Login succeeded but the session could not be persisted", "error", err)
		}

		logAndAudit(s, "Login", email, "info", "Session established.")
		fmt.Println("Logged in.")
	},
}

var registerRootCmd = &cobra.Command{
	Use:   "register-root",
	Short: "Creates the first root operator account and logs in.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			slog.Error("Both --email and --password are required.")
			os.Exit(1)
		}

		s := newStore()
		client := newClient(s)

		token, err := client.RootCreate(ctx, name, email, password)
		if err != nil {
			logAndAudit(s, "RegisterRoot", email, "fatal", "Root account creation failed", "error", err)
		}
		if err := s.SaveToken(token); err != nil {
			logAndAudit(s, "RegisterRoot", email, "fatal", "Account created but the session could not be persisted", "error", err)
		}

		logAndAudit(s, "RegisterRoot", email, "info", "Root account created, session established.")
		fmt.Println("Root account created. Logged in.")
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discards the persisted session token.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		if err := s.ClearToken(); err != nil {
			slog.Error("Failed to clear session", "error", err)
			os.Exit(1)
		}
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Shows the profile behind the current session.",
	Long: `Without a persisted token the console is simply unauthenticated and no
request is made. With a token, the profile is fetched; if that fails for any
reason the stale token is discarded and the console drops back to
unauthenticated. No retry, no refresh flow.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()

		token, err := s.Token()
		if err != nil {
			slog.Error("Failed to read session token", "error", err)
			os.Exit(1)
		}
		if token == "" {
			fmt.Println("Not logged in.")
			return
		}

		client := newClient(s)
		user, err := client.Me(ctx)
		if err != nil {
			if clearErr := s.ClearToken(); clearErr != nil {
				slog.Warn("Failed to clear stale session token", "error", clearErr)
			}
			slog.Warn("Session token rejected, cleared.", "error", err)
			fmt.Println("Not logged in.")
			return
		}

		printJSON(user)
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Root operator email.")
	loginCmd.Flags().String("password", "", "Root operator password.")
	registerRootCmd.Flags().String("name", "", "Operator display name.")
	registerRootCmd.Flags().String("email", "", "Root operator email.")
	registerRootCmd.Flags().String("password", "", "Root operator password.")
}
