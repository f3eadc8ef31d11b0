package main

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/localsettings/internal/pixelbot"
	"github.com/spf13/cobra"
)

var pixelbotCmd = &cobra.Command{
	Use:   "pixelbot",
	Short: "Pixel canvas helpers",
}

var pixelbotRenderCmd = &cobra.Command{
	Use:   "render <canvas.csv>",
	Short: "Render the pixel canvas CSV to PNG",
	Long: `Writes canvas.png at one pixel per cell and canvas_512x512.png scaled up,
into the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("out")
		canvas, err := pixelbot.Render(args[0],
			filepath.Join(dir, "canvas.png"),
			filepath.Join(dir, fmt.Sprintf("canvas_%dx%d.png", pixelbot.ScaledSize, pixelbot.ScaledSize)),
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %dx%d canvas into %s\n", canvas.Width(), canvas.Height(), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pixelbotCmd)
	pixelbotCmd.AddCommand(pixelbotRenderCmd)
	pixelbotRenderCmd.Flags().StringP("out", "o", ".", "Output directory")
}
