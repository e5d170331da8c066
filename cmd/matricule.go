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

var matriculeCmd = &cobra.Command{
	Use:   "matricule",
	Short: "Configures the draft's matricule (student ID) format.",
	Long: `The matricule format is a template with {{key}} tokens. "sequence" and
"year" are built-ins; every other token resolves from the configured
placeholders. Previews use fixed sample data; real sequence numbers are
allocated by the backend when students are created.`,
}

var matriculeFormatCmd = &cobra.Command{
	Use:   "format TEMPLATE",
	Short: "Sets the format template string.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		w.SetMatriculeFormat(args[0])
		saveDraft(s, w)
		fmt.Printf("Preview: %s\n", wizard.Preview(w.Form.MatriculeConfig))
	},
}

var matriculeSeqCmd = &cobra.Command{
	Use:   "seq LENGTH",
	Short: "Sets the zero-padded width of the sequence token (1-10).",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			slog.Error("Sequence length must be a number", "got", args[0])
			os.Exit(1)
		}

		s := newStore()
		w := loadDraft(s)
		if err := w.SetSequenceLength(n); err != nil {
			slog.Error("Invalid sequence length", "error", err)
			os.Exit(1)
		}
		saveDraft(s, w)
		fmt.Printf("Preview: %s\n", wizard.Preview(w.Form.MatriculeConfig))
	},
}

var matriculePlaceholderCmd = &cobra.Command{
	Use:   "placeholder {add|set|remove} KEY [VALUE]",
	Short: "Manages custom placeholders.",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		typ, _ := cmd.Flags().GetString("type")
		pType := models.PlaceholderType(typ)
		switch pType {
		case "", models.PlaceholderSchool, models.PlaceholderFaculty, models.PlaceholderDepartment:
		default:
			slog.Error("Placeholder type must be school, faculty or department", "got", typ)
			os.Exit(1)
		}

		var err error
		switch args[0] {
		case "add":
			err = w.AddPlaceholder(args[1], pType)
		case "set":
			if len(args) < 3 {
				slog.Error("set needs KEY and VALUE")
				os.Exit(1)
			}
			err = w.UpdatePlaceholder(args[1], args[2], pType)
		case "remove":
			w.RemovePlaceholder(args[1])
		default:
			slog.Error("Unknown placeholder action", "action", args[0])
			os.Exit(1)
		}
		if err != nil {
			slog.Error("Placeholder operation failed", "error", err)
			os.Exit(1)
		}

		saveDraft(s, w)
		fmt.Printf("Preview: %s\n", wizard.Preview(w.Form.MatriculeConfig))
	},
}

var matriculeTemplateCmd = &cobra.Command{
	Use:   "template [NAME]",
	Short: "Lists quick-start templates, or applies one to the draft.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, tpl := range wizard.MatriculeTemplates {
				fmt.Printf("%-20s %s  (%s)\n", tpl.Name, tpl.Format, tpl.Description)
			}
			return
		}

		s := newStore()
		w := loadDraft(s)
		if err := w.ApplyTemplate(args[0]); err != nil {
			slog.Error("Failed to apply template", "error", err)
			os.Exit(1)
		}
		saveDraft(s, w)
		fmt.Printf("Preview: %s\n", wizard.Preview(w.Form.MatriculeConfig))
	},
}

var matriculePreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Renders the format with fixed sample data.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		fmt.Println(wizard.Preview(w.Form.MatriculeConfig))
	},
}

var matriculeExamplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Renders three previews with randomized sequence numbers.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		examples := wizard.Examples(w.Form.MatriculeConfig)
		if examples == nil {
			fmt.Println(wizard.EmptyFormatPreview)
			return
		}
		for _, ex := range examples {
			fmt.Println(ex)
		}
	},
}

func init() {
	matriculePlaceholderCmd.Flags().String("type", "", "Semantic type: school, faculty or department.")

	matriculeCmd.AddCommand(matriculeFormatCmd)
	matriculeCmd.AddCommand(matriculeSeqCmd)
	matriculeCmd.AddCommand(matriculePlaceholderCmd)
	matriculeCmd.AddCommand(matriculeTemplateCmd)
	matriculeCmd.AddCommand(matriculePreviewCmd)
	matriculeCmd.AddCommand(matriculeExamplesCmd)
}
