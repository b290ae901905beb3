package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	kolamnet "KolamBoard/internal/net"
	"KolamBoard/internal/state"
	"KolamBoard/internal/ui"
)

func newDrawCommand(app *AppContext) *cobra.Command {
	var share bool
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Open the dot-grid board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraw(cmd, app, share)
		},
	}
	cmd.Flags().BoolVar(&share, "share", false, "share the board live with viewers on the local network")
	return cmd
}

func runDraw(cmd *cobra.Command, app *AppContext, share bool) error {
	opts := ui.Options{
		Config:  app.Config,
		Style:   app.Style,
		Storage: app.Storage,
		Logger:  app.Logger,
	}
	if !share {
		ui.Run(opts, nil)
		return nil
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	port := app.Config.Share.Port
	hub := kolamnet.NewHub(state.NewClock(), app.Logger)
	go func() {
		if err := hub.Serve(ctx, port); err != nil {
			app.Logger.Error("share hub stopped", "error", err)
		}
	}()

	if app.Config.Share.Advertise {
		server, err := kolamnet.Advertise(port)
		if err != nil {
			app.Logger.Warn("mDNS advertise failed, share the link by hand", "error", err)
		} else {
			defer server.Shutdown()
		}
	}

	opts.ShareLink = kolamnet.ShareLink(kolamnet.OutboundIP(), port)
	app.Logger.Info("sharing board", "link", opts.ShareLink)

	ui.Run(opts, func(b *ui.Board, _ *ui.Controls) {
		publish := func(grid state.GridConfig, p state.Pattern) {
			if err := hub.Publish(grid, p); err != nil {
				app.Logger.Error("publish failed", "error", err)
			}
		}
		b.OnChange = publish
		publish(b.Session().Config(), b.Session().Pattern())
	})
	return nil
}
