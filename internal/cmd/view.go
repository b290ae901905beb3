package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"

	kolamnet "KolamBoard/internal/net"
	"KolamBoard/internal/state"
	"KolamBoard/internal/ui"
)

func newViewCommand(app *AppContext) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "view [kolam://host:port]",
		Short: "Follow a shared board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			link := ""
			if len(args) == 1 {
				link = args[0]
			} else {
				var err error
				if link, err = kolamnet.Discover(ctx, timeout); err != nil {
					return err
				}
				app.Logger.Info("found sharing host", "link", link)
			}
			url, err := kolamnet.ParseLink(link)
			if err != nil {
				return err
			}
			return runView(ctx, app, link, url)
		},
	}
	cmd.Flags().DurationVar(&timeout, "discover-timeout", 3*time.Second, "how long to look for a host on the local network")
	return cmd
}

func runView(ctx context.Context, app *AppContext, link, url string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := ui.Options{
		Title:     "Kolam Pattern Viewer",
		Config:    app.Config,
		Style:     app.Style,
		Storage:   app.Storage,
		ShareLink: link,
		ReadOnly:  true,
		Logger:    app.Logger,
	}
	ui.Run(opts, func(b *ui.Board, c *ui.Controls) {
		c.SetStatus("Connecting to " + link)
		clock := state.NewClock()
		f := kolamnet.NewFollower(func(m kolamnet.Message) {
			update := clock.Now()
			fyne.Do(func() {
				b.ApplyRemote(m.Grid, m.Pattern)
				c.SetStatus(fmt.Sprintf("Following %s: %d paths (update %d)", link, len(m.Pattern), update))
			})
		}, app.Logger)
		f.Clock = clock

		go func() {
			err := f.Follow(ctx, url)
			if err != nil && ctx.Err() == nil {
				app.Logger.Warn("follow ended", "error", err)
				fyne.Do(func() { c.SetStatus(err.Error()) })
			}
		}()
	})
	return nil
}
