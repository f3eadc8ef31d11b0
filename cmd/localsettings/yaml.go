package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the account settings as YAML",
	Long:  `Writes the settings snapshot (or the defaults) to file, or stdout when omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		settings, err := svc.Engine.Settings(cmd.Context(), account(cmd))
		if err != nil {
			return err
		}
		data, err := domain.MarshalYAML(settings)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the account settings from YAML",
	Long:  `Reads a YAML snapshot from file, or stdin when omitted. Missing keys keep their defaults.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) == 0 {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}
		settings, err := domain.UnmarshalYAML(data)
		if err != nil {
			return err
		}

		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.Engine.Replace(cmd.Context(), account(cmd), settings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported settings for %s\n", account(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
