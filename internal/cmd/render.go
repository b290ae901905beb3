package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"KolamBoard/internal/export"
)

func newRenderCommand(app *AppContext) *cobra.Command {
	var (
		format  string
		out     string
		canvas  float64
		palette string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Export a saved pattern as PNG, SVG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			rec, err := app.Storage.Load(args[0])
			if err != nil {
				return err
			}

			style := app.Style
			if palette != "" {
				if style, err = style.WithPalette(palette); err != nil {
					return err
				}
			}
			if canvas <= 0 {
				canvas = app.Config.Canvas.Size
			}
			if out == "" {
				out = filepath.Join(".", export.FileName(f, time.Now()))
			}

			job := export.Job{
				Format:     f,
				Grid:       rec.Grid,
				CanvasSize: canvas,
				Pattern:    rec.Pattern,
				Style:      style,
			}
			if err := export.WriteFile(out, job); err != nil {
				return err
			}
			app.Logger.Info("pattern exported", "source", args[0], "format", f, "out", out)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.PNG), "output format: png, svg or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: kolam-pattern-<millis>.<format>)")
	cmd.Flags().Float64Var(&canvas, "canvas", 0, "canvas side in pixels (default: canvas.size from config)")
	cmd.Flags().StringVar(&palette, "palette", "", "color palette override")
	return cmd
}

func newListCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved patterns, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.Storage.List()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(w, "no saved patterns in %s\n", app.Storage.Root())
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d paths\t%s\n",
					e.File, e.Timestamp.Local().Format(time.DateTime), e.Paths, e.Name)
			}
			return nil
		},
	}
}
