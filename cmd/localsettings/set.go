package main

import (
	"fmt"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Change one setting",
	Long: `Applies a change to the setting at the dotted path, e.g.
  localsettings set collapsed.enabled false
  localsettings set layout single`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := domain.ParsePath(args[0])
		kind := domain.KindOf(path)
		if kind == domain.KindAbsent {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPath, args[0])
		}
		value, err := domain.ParseValue(kind, args[1])
		if err != nil {
			return err
		}

		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		settings, err := svc.Engine.Change(cmd.Context(), account(cmd), domain.Change{Path: path, Value: value})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", path, domain.Lookup(settings, path))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings of the account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.Engine.Reset(cmd.Context(), account(cmd)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Settings of %s reset to defaults\n", account(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
}
