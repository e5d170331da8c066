package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CampusFoundry/ums-console/pkg/models"
	"github.com/CampusFoundry/ums-console/pkg/wizard"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Works on the in-progress UMS creation draft.",
	Long: `The creation draft is a five-step document: institution profile,
administrator, roles & users, modules & platforms, review. It lives in the
local data directory until submitted or reset.`,
}

var draftNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Starts a fresh draft, discarding any existing one.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := wizard.New()
		saveDraft(s, w)
		logAndAudit(s, "DraftNew", "draft", "info", "Started a fresh creation draft.")
		fmt.Println("New draft started at step 1.")
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the current draft document and step.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		printJSON(w)
	},
}

var draftSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Sets institution and administrator fields on the draft.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		flags := cmd.Flags()
		setString := func(flag string, dst *string) {
			if flags.Changed(flag) {
				v, _ := flags.GetString(flag)
				*dst = v
			}
		}
		setString("name", &w.Form.UMSName)
		setString("description", &w.Form.UMSDescription)
		setString("tagline", &w.Form.UMSTagline)
		setString("website", &w.Form.UMSWebsite)
		setString("size", &w.Form.UMSSize)
		setString("logo", &w.Form.UMSLogo)
		setString("photo", &w.Form.UMSPhoto)
		setString("admin-name", &w.Form.AdminName)
		setString("admin-email", &w.Form.AdminEmail)
		setString("admin-phone", &w.Form.AdminPhone)

		if flags.Changed("type") {
			v, _ := flags.GetString("type")
			switch models.InstitutionType(v) {
			case models.TypeUniversity, models.TypeCollege, models.TypeSchool:
				w.Form.UMSType = models.InstitutionType(v)
			default:
				slog.Error("Unknown institution type", "type", v)
				os.Exit(1)
			}
		}
		if flags.Changed("enable-2fa") {
			v, _ := flags.GetBool("enable-2fa")
			w.Form.Enable2FA = v
		}

		saveDraft(s, w)
		fmt.Println("Draft updated.")
	},
}

var draftStepCmd = &cobra.Command{
	Use:   "step {next|back|goto N}",
	Short: "Moves the draft's step pointer.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		switch args[0] {
		case "next":
			w.Next()
		case "back":
			w.Prev()
		case "goto":
			if len(args) < 2 {
				slog.Error("goto needs a step number")
				os.Exit(1)
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < wizard.FirstStep || n > wizard.LastStep {
				slog.Error("Step must be a number between 1 and 5", "got", args[1])
				os.Exit(1)
			}
			w.GoTo(n)
		default:
			slog.Error("Unknown step action", "action", args[0])
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Printf("Draft is now at step %d.\n", w.Step)
	},
}

var draftResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Resets the draft to its initial empty state.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		w.Reset()
		saveDraft(s, w)
		logAndAudit(s, "DraftReset", "draft", "info", "Draft reset to initial state.")
		fmt.Println("Draft reset.")
	},
}

var draftValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks whether the draft is ready to submit.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		if err := w.Validate(); err != nil {
			slog.Error("Draft validation failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("Draft is ready to submit.")
	},
}

var draftSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submits the completed draft as a new UMS instance.",
	Long: `Validates the draft, then posts it once as multipart form-data (images
as binary parts, roles/modules/platforms as JSON-encoded fields). On success
the local draft is discarded; on failure it stays exactly where it was.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := newStore()
		w := loadDraft(s)

		if err := w.Validate(); err != nil {
			slog.Error("Draft validation failed, nothing submitted", "error", err)
			os.Exit(1)
		}

		client := newClient(s)
		logAndAudit(s, "CreateUMS", w.Form.UMSName, "info", "Submitting creation draft...")

		created, err := client.CreateUMS(ctx, &w.Form)
		if err != nil {
			logAndAudit(s, "CreateUMS", w.Form.UMSName, "fatal", "UMS creation failed; draft kept", "error", err)
		}

		if err := s.ClearDraft(); err != nil {
			slog.Warn("UMS created but the local draft could not be cleared", "error", err)
		}
		logAndAudit(s, "CreateUMS", w.Form.UMSName, "info", "UMS instance created.", "ums_id", created.ID)
		printJSON(created)
	},
}

func init() {
	draftSetCmd.Flags().String("name", "", "Institution name (required to submit).")
	draftSetCmd.Flags().String("description", "", "Institution description (required to submit).")
	draftSetCmd.Flags().String("tagline", "", "Institution tagline.")
	draftSetCmd.Flags().String("website", "", "Institution website URL.")
	draftSetCmd.Flags().String("type", "", "Institution type: University, College or School.")
	draftSetCmd.Flags().String("size", "", "Institution size.")
	draftSetCmd.Flags().String("logo", "", "Logo: file path, data-URL or remote URL.")
	draftSetCmd.Flags().String("photo", "", "Photo: file path, data-URL or remote URL.")
	draftSetCmd.Flags().String("admin-name", "", "Administrator name (required to submit).")
	draftSetCmd.Flags().String("admin-email", "", "Administrator email (required to submit).")
	draftSetCmd.Flags().String("admin-phone", "", "Administrator phone.")
	draftSetCmd.Flags().Bool("enable-2fa", false, "Require two-factor auth for the administrator.")

	draftCmd.AddCommand(draftNewCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftStepCmd)
	draftCmd.AddCommand(draftResetCmd)
	draftCmd.AddCommand(draftValidateCmd)
	draftCmd.AddCommand(draftSubmitCmd)
	draftCmd.AddCommand(draftRoleCmd)
}
