package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/localsettings/internal/chat"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "XMPP chat helpers",
}

var chatBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Fetch the chat connection data and print the client options",
	Long: `Requests the connection data endpoint once. When it answers with data,
the options the chat client would be initialized with are printed as JSON.
A failed request is logged and leaves the chat uninitialized.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if cmd.Flags().Changed("url") {
			svc.Config.Chat.ConnDataURL, _ = cmd.Flags().GetString("url")
		}

		out := cmd.OutOrStdout()
		outcome, err := svc.Bootstrapper(chat.InitializerFunc(func(_ context.Context, opts chat.InitOptions) error {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(opts)
		})).Bootstrap(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "chat not initialized (%s): %v\n", outcome, err)
			return nil
		}
		if outcome == chat.OutcomeNoData {
			fmt.Fprintln(cmd.ErrOrStderr(), "no connection data; chat not initialized")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatBootstrapCmd)
	chatBootstrapCmd.Flags().String("url", "", "Connection data URL (overrides chat.conndata_url)")
}
