package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var draftRoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Edits the draft's roles and their nested users.",
}

var draftRoleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Appends a role to the draft.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		role := w.AddRole(name, description)

		saveDraft(s, w)
		fmt.Printf("Added role %q (id %s).\n", role.Name, role.ID)
	},
}

var draftRoleUpdateCmd = &cobra.Command{
	Use:   "update INDEX",
	Short: "Merges fields into the role at a position.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		index := mustIndex(args[0])
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		if !cmd.Flags().Changed("permissions") {
			permissions = nil
		}

		if err := w.UpdateRole(index, name, description, permissions); err != nil {
			slog.Error("Failed to update role", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Println("Role updated.")
	},
}

var draftRoleRemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Removes the role at a position.",
	Long: `Removing a role shifts the positions of the roles after it. Anything
holding an old position must re-resolve by role id afterwards.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		if err := w.RemoveRole(mustIndex(args[0])); err != nil {
			slog.Error("Failed to remove role", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Println("Role removed.")
	},
}

var draftRoleAddUserCmd = &cobra.Command{
	Use:   "add-user ROLE_INDEX",
	Short: "Adds a user to a role with a freshly generated password.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			slog.Error("--email is required.")
			os.Exit(1)
		}

		user, err := w.AddUserToRole(mustIndex(args[0]), email)
		if err != nil {
			slog.Error("Failed to add user", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		// The password cannot be recovered later; this is the one chance to
		// record it.
		fmt.Printf("Added user %s.\n", user.Email)
		fmt.Printf("Generated password (shown once, not recoverable): %s\n", user.Password)
	},
}

var draftRoleUpdateUserCmd = &cobra.Command{
	Use:   "update-user ROLE_INDEX USER_INDEX",
	Short: "Updates a user nested in a role.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		email, _ := cmd.Flags().GetString("email")
		if err := w.UpdateUserInRole(mustIndex(args[0]), mustIndex(args[1]), email); err != nil {
			slog.Error("Failed to update user", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Println("User updated.")
	},
}

var draftRoleRemoveUserCmd = &cobra.Command{
	Use:   "remove-user ROLE_INDEX USER_INDEX",
	Short: "Removes a user from a role.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		if err := w.RemoveUserFromRole(mustIndex(args[0]), mustIndex(args[1])); err != nil {
			slog.Error("Failed to remove user", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Println("User removed.")
	},
}

var draftRoleMarkPrimaryCmd = &cobra.Command{
	Use:   "mark-primary ROLE_INDEX USER_INDEX",
	Short: "Marks one user as the role's primary account.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		if err := w.MarkPrimaryUser(mustIndex(args[0]), mustIndex(args[1])); err != nil {
			slog.Error("Failed to mark primary user", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Println("Primary user set.")
	},
}

func mustIndex(arg string) int {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil || n < 0 {
		slog.Error("Expected a non-negative index", "got", arg)
		os.Exit(1)
	}
	return n
}

func init() {
	draftRoleAddCmd.Flags().String("name", "", "Role name.")
	draftRoleAddCmd.Flags().String("description", "", "Role description.")
	draftRoleUpdateCmd.Flags().String("name", "", "New role name.")
	draftRoleUpdateCmd.Flags().String("description", "", "New role description.")
	draftRoleUpdateCmd.Flags().StringSlice("permissions", nil, "Replacement permission list.")
	draftRoleAddUserCmd.Flags().String("email", "", "User email.")
	draftRoleUpdateUserCmd.Flags().String("email", "", "New user email.")

	draftRoleCmd.AddCommand(draftRoleAddCmd)
	draftRoleCmd.AddCommand(draftRoleUpdateCmd)
	draftRoleCmd.AddCommand(draftRoleRemoveCmd)
	draftRoleCmd.AddCommand(draftRoleAddUserCmd)
	draftRoleCmd.AddCommand(draftRoleUpdateUserCmd)
	draftRoleCmd.AddCommand(draftRoleRemoveUserCmd)
	draftRoleCmd.AddCommand(draftRoleMarkPrimaryCmd)
}
