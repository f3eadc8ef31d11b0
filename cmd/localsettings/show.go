package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/localsettings/internal/presentation/graph"
	"github.com/aretw0/localsettings/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [page]",
	Short: "Render a page of the settings dialog",
	Long: `Renders the settings dialog for the account with the given page selected
(0 General, 1 Compose box, 2 Content Warnings, 3 Collapsed toots, 4 Media).
Output is Markdown, styled when stdout is a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page %q", args[0])
			}
			index = n
		}
		column, _ := cmd.Flags().GetBool("column")
		asGraph, _ := cmd.Flags().GetBool("graph")

		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if asGraph {
			var pages []graph.Page
			overlay := &graph.Overlay{}
			for i := 0; i < svc.Engine.Pages(); i++ {
				title, fields := svc.Engine.Describe(i)
				pages = append(pages, graph.Page{Title: title, Fields: fields})

				page, err := svc.Engine.RenderPage(ctx, account(cmd), i)
				if err != nil {
					return err
				}
				for _, s := range page.Sections {
					for _, c := range s.Controls {
						if !c.Enabled {
							overlay.Disabled = append(overlay.Disabled, c.ID)
						}
					}
				}
			}
			fmt.Fprint(out, graph.GenerateMermaid(pages, overlay))
			return nil
		}

		var markdown string
		if column {
			page, err := svc.Engine.RenderColumn(ctx, account(cmd))
			if err != nil {
				return err
			}
			markdown = tui.PageMarkdown(page)
		} else {
			dialog, err := svc.Engine.RenderDialog(ctx, account(cmd), index)
			if err != nil {
				return err
			}
			markdown = tui.Markdown(dialog)
		}

		if render := tui.RendererFor(out); render != nil {
			if styled, err := render(markdown); err == nil {
				markdown = styled
			}
		}
		fmt.Fprintln(out, strings.TrimSpace(markdown))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("column", false, "Render the home column settings instead of the dialog")
	showCmd.Flags().Bool("graph", false, "Print a Mermaid diagram of the field dependencies")
}
