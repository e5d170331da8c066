package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	// Variable to hold the value of the debug flag
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "ums-console",
	Short: "Administrative console for provisioning UMS instances.",
	Long: `ums-console drives the creation and configuration of multi-tenant
University Management System instances against the UMS backend: institution
profile setup, roles and users, module and platform selection, matricule
formatting, and per-instance departments, programs and students.`,
}

// ExecuteContext executes the root command with a given context.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ums-console.yaml)")
	// Define the global --debug flag
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug level logging.")

	// Add sub-commands here
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerRootCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(matriculeCmd)
	rootCmd.AddCommand(umsCmd)
	rootCmd.AddCommand(departmentsCmd)
	rootCmd.AddCommand(programsCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(rolesCmd)
}

func initConfig() {
	// A local .env complements the environment, masomo-style; absence is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ums-console")
	}

	viper.SetEnvPrefix("UMSCONSOLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Info("Using config file", "file", viper.ConfigFileUsed())
	}
}
