package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/CampusFoundry/ums-console/pkg/models"
	"github.com/CampusFoundry/ums-console/pkg/wizard"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Selects modules and platforms on the draft and estimates cost.",
}

var modulesCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists the module catalog with hourly FCFA prices per tier.",
	Run: func(cmd *cobra.Command, args []string) {
		names := make([]string, 0, len(wizard.ModuleCatalog))
		for name := range wizard.ModuleCatalog {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := wizard.ModuleCatalog[name]
			fmt.Printf("%-26s basic=%d  standard=%d  premium=%d\n", name, p.Basic, p.Standard, p.Premium)
		}
	},
}

var modulesToggleCmd = &cobra.Command{
	Use:   "toggle NAME TIER",
	Short: "Selects or deselects a module at a tier.",
	Long: `Toggling is a symmetric difference: selecting an already-selected
module/tier pair removes it. Selecting the same module at a second tier is
kept rather than replaced; 'draft validate' flags such drafts for review.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name, tier := args[0], args[1]
		if !wizard.KnownModule(name) {
			slog.Error("Unknown module", "name", name)
			os.Exit(1)
		}
		if !models.ValidTier(tier) {
			slog.Error("Tier must be basic, standard or premium", "got", tier)
			os.Exit(1)
		}

		s := newStore()
		w := loadDraft(s)
		sel := models.ModuleSelection{Name: name, Tier: models.Tier(tier)}
		w.ToggleModule(sel)
		saveDraft(s, w)

		if w.ModuleSelected(sel) {
			fmt.Printf("Selected %s.\n", sel.Token())
		} else {
			fmt.Printf("Deselected %s.\n", sel.Token())
		}
		if dual := w.DualTierModules(); len(dual) > 0 {
			slog.Warn("Modules selected at more than one tier", "modules", dual)
		}
	},
}

var modulesPlatformCmd = &cobra.Command{
	Use:   "platform {teacherApp|studentApp}",
	Short: "Flips a platform flag on the draft.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		if !w.TogglePlatform(args[0]) {
			slog.Error("Unknown platform", "name", args[0])
			os.Exit(1)
		}
		saveDraft(s, w)
		fmt.Printf("Platforms: teacherApp=%t studentApp=%t\n",
			w.Form.Platforms.TeacherApp, w.Form.Platforms.StudentApp)
	},
}

var modulesOfficeCmd = &cobra.Command{
	Use:   "office NAME",
	Short: "Adds or removes a desktop office by name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)
		w.ToggleOffice(args[0])
		saveDraft(s, w)
		fmt.Printf("Desktop offices: %v\n", w.Form.Platforms.DesktopOffices)
	},
}

var modulesCostCmd = &cobra.Command{
	Use:   "cost",
	Short: "Shows the estimated hourly and monthly cost of the draft.",
	Run: func(cmd *cobra.Command, args []string) {
		s := newStore()
		w := loadDraft(s)

		hourly := wizard.HourlyCost(&w.Form)
		monthly := wizard.MonthlyCost(&w.Form)

		for _, sel := range w.Form.Modules {
			price := wizard.ModuleCatalog[sel.Name].Price(sel.Tier)
			fmt.Printf("  %-34s %4d FCFA/hr\n", sel.Token(), price)
		}
		if w.Form.Platforms.TeacherApp {
			fmt.Printf("  %-34s %4d FCFA/hr\n", "teacher app", wizard.TeacherAppHourlyRate)
		}
		if w.Form.Platforms.StudentApp {
			fmt.Printf("  %-34s %4d FCFA/hr\n", "student app", wizard.StudentAppHourlyRate)
		}
		if n := len(w.Form.Platforms.DesktopOffices); n > 0 {
			fmt.Printf("  %-34s %4d FCFA/hr\n", fmt.Sprintf("desktop offices (%d)", n), n*wizard.OfficeHourlyRate)
		}
		fmt.Printf("Hourly:  %d FCFA (%s)\n", hourly, wizard.USDDisplay(hourly))
		fmt.Printf("Monthly: %d FCFA (%s)\n", monthly, wizard.USDDisplay(monthly))
	},
}

func init() {
	modulesCmd.AddCommand(modulesCatalogCmd)
	modulesCmd.AddCommand(modulesToggleCmd)
	modulesCmd.AddCommand(modulesPlatformCmd)
	modulesCmd.AddCommand(modulesOfficeCmd)
	modulesCmd.AddCommand(modulesCostCmd)
}
