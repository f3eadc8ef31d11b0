package main

import (
	"os"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the settings dialog interactively",
	Long: `Opens the settings dialog in the terminal. Type a number to follow a
navigation entry, "toggle <field>", "set <field> <text>" or
"choose <field> <value>" to change a field, and "exit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")

		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		r := localsettings.NewRunner()
		r.Input = cmd.InOrStdin()
		r.Output = cmd.OutOrStdout()
		r.Headless = headless
		if !headless {
			tui.PrintBanner(r.Output)
			r.Renderer = tui.RendererFor(os.Stdout)
		}
		return r.Run(cmd.Context(), svc.Engine, account(cmd))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("headless", false, "Plain Markdown output, no banner")
}
