package main

import (
	"fmt"
	"os"

	"github.com/aretw0/localsettings/internal/cli"
	"github.com/aretw0/localsettings/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "localsettings",
	Short: "Per-account front-end settings service",
	Long: `localsettings stores the local settings of social-network accounts,
renders the settings dialog and serves it over HTTP and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./localsettings.yaml)")
	rootCmd.PersistentFlags().StringP("account", "a", "default", "Account whose settings are used")
	rootCmd.PersistentFlags().String("store", "", "Store driver: memory, file, redis or sqlite")
	rootCmd.PersistentFlags().String("store-path", "", "Directory (file) or database file (sqlite)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("store") {
		cfg.Store.Driver, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, cfg.Validate()
}

// loadServices builds the wired application. The caller must Close it.
func loadServices(cmd *cobra.Command) (*cli.Services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.Build(cfg, nil)
}

func account(cmd *cobra.Command) string {
	a, _ := cmd.Flags().GetString("account")
	return a
}
