package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CampusFoundry/ums-console/pkg/entity"
	"github.com/CampusFoundry/ums-console/pkg/models"
	"github.com/CampusFoundry/ums-console/pkg/umsapi"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manages persisted roles, their permissions and users.",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all roles.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Roles(newClient(s))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to list roles", "error", err)
			os.Exit(1)
		}
		printJSON(ctl.List())
	},
}

var rolesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Creates a role.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Roles(newClient(s))
		defer ctl.Close()

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			slog.Error("--name is required.")
			os.Exit(1)
		}
		description, _ := cmd.Flags().GetString("description")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")

		created, err := ctl.Add(ctx, umsapi.RoleInput{Name: name, Description: description, Permissions: permissions})
		if err != nil {
			logAndAudit(s, "AddRole", name, "fatal", "Failed to create role", "error", err)
		}
		logAndAudit(s, "AddRole", name, "info", "Role created.", "id", created.ID)
		printJSON(created)
	},
}

var rolesEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Updates a role by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Roles(newClient(s))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load roles", "error", err)
			os.Exit(1)
		}

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")

		updated, err := ctl.Edit(ctx, args[0], umsapi.RoleInput{Name: name, Description: description, Permissions: permissions})
		if err != nil {
			logAndAudit(s, "EditRole", args[0], "fatal", "Failed to update role", "error", err)
		}
		logAndAudit(s, "EditRole", args[0], "info", "Role updated.")
		printJSON(updated)
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a role by id.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		ctl := entity.Roles(newClient(s))
		defer ctl.Close()

		if err := ctl.Refresh(ctx); err != nil {
			slog.Error("Failed to load roles", "error", err)
			os.Exit(1)
		}
		if err := ctl.Delete(ctx, args[0]); err != nil {
			logAndAudit(s, "DeleteRole", args[0], "fatal", "Failed to delete role", "error", err)
		}
		logAndAudit(s, "DeleteRole", args[0], "info", "Role deleted.")
		fmt.Println("Deleted.")
	},
}

var rolesPermissionsCmd = &cobra.Command{
	Use:   "permissions [ROLE_ID]",
	Short: "Shows the grouped permission catalog, or replaces a role's set.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		if len(args) == 0 {
			groups, err := client.GroupedPermissions(ctx)
			if err != nil {
				slog.Error("Failed to fetch permission catalog", "error", err)
				os.Exit(1)
			}
			printJSON(groups)
			return
		}

		permissions, _ := cmd.Flags().GetStringSlice("set")
		if !cmd.Flags().Changed("set") {
			slog.Error("Pass --set to replace the role's permissions.")
			os.Exit(1)
		}

		updated, err := client.SetRolePermissions(ctx, args[0], permissions)
		if err != nil {
			logAndAudit(s, "SetRolePermissions", args[0], "fatal", "Failed to set permissions", "error", err)
		}
		logAndAudit(s, "SetRolePermissions", args[0], "info", "Role permissions replaced.")
		printJSON(updated)
	},
}

var rolesAddUserCmd = &cobra.Command{
	Use:   "add-user ROLE_ID",
	Short: "Attaches a user account to a role.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			slog.Error("--email is required.")
			os.Exit(1)
		}
		primary, _ := cmd.Flags().GetBool("primary")

		user, err := client.AddRoleUser(ctx, args[0], umsapi.RoleUserInput{Email: email, IsPrimary: primary})
		if err != nil {
			logAndAudit(s, "AddRoleUser", email, "fatal", "Failed to attach user", "error", err)
		}
		logAndAudit(s, "AddRoleUser", email, "info", "User attached to role.", "role_id", args[0])
		printJSON(user)
	},
}

var rolesRemoveUserCmd = &cobra.Command{
	Use:   "remove-user ROLE_ID USER_ID",
	Short: "Detaches a user account from a role.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)

		if err := client.RemoveRoleUser(ctx, args[0], args[1]); err != nil {
			logAndAudit(s, "RemoveRoleUser", args[1], "fatal", "Failed to detach user", "error", err)
		}
		logAndAudit(s, "RemoveRoleUser", args[1], "info", "User detached from role.", "role_id", args[0])
		fmt.Println("Detached.")
	},
}

var rolesWatchUsersCmd = &cobra.Command{
	Use:   "watch-users ROLE_ID",
	Short: "Shows a role's users, refreshing every 30 seconds until interrupted.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		client := newClient(s)
		roleID := args[0]

		ctl := entity.NewController("role user", roleUserService{client: client, roleID: roleID},
			func(u models.User) string { return u.ID })
		defer ctl.Close()

		slog.Info("Watching role users; Ctrl+C stops.", "role_id", roleID)
		ctl.AutoRefresh(ctx, 30*time.Second, func(users []models.User) {
			fmt.Printf("--- %s (%d users) ---\n", time.Now().Format(time.TimeOnly), len(users))
			for _, u := range users {
				fmt.Printf("  %s  %s\n", u.ID, u.Email)
			}
		})
	},
}

// roleUserService adapts the role-users subresource to the controller
// contract; it is list/add/remove only, so Update is unsupported.
type roleUserService struct {
	client *umsapi.Client
	roleID string
}

func (s roleUserService) List(ctx context.Context) ([]models.User, error) {
	return s.client.RoleUsers(ctx, s.roleID)
}

func (s roleUserService) Create(ctx context.Context, dto any) (*models.User, error) {
	in, ok := dto.(umsapi.RoleUserInput)
	if !ok {
		return nil, fmt.Errorf("expected umsapi.RoleUserInput, got %T", dto)
	}
	return s.client.AddRoleUser(ctx, s.roleID, in)
}

func (s roleUserService) Update(ctx context.Context, id string, dto any) (*models.User, error) {
	return nil, fmt.Errorf("role users cannot be updated in place")
}

func (s roleUserService) Delete(ctx context.Context, id string) error {
	return s.client.RemoveRoleUser(ctx, s.roleID, id)
}

func init() {
	rolesAddCmd.Flags().String("name", "", "Role name.")
	rolesAddCmd.Flags().String("description", "", "Role description.")
	rolesAddCmd.Flags().StringSlice("permissions", nil, "Initial permission list.")
	rolesEditCmd.Flags().String("name", "", "New role name.")
	rolesEditCmd.Flags().String("description", "", "New role description.")
	rolesEditCmd.Flags().StringSlice("permissions", nil, "Replacement permission list.")
	rolesPermissionsCmd.Flags().StringSlice("set", nil, "Replacement permission list for the role.")
	rolesAddUserCmd.Flags().String("email", "", "User email.")
	rolesAddUserCmd.Flags().Bool("primary", false, "Mark the user as the role's primary account.")

	rolesCmd.AddCommand(rolesListCmd, rolesAddCmd, rolesEditCmd, rolesDeleteCmd,
		rolesPermissionsCmd, rolesAddUserCmd, rolesRemoveUserCmd, rolesWatchUsersCmd)
}
