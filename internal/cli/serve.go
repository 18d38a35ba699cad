package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"persontable/internal/api"
	"persontable/internal/engine"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var listen, data string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Server.Listen = listen
			}
			if data != "" {
				a.cfg.Table.DataFile = data
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides server.listen)")
	cmd.Flags().StringVar(&data, "data", "", "CSV file of people (overrides table.data_file)")
	return cmd
}

// serve starts answering immediately; data routes return 503 until the
// background load has finished.
func (a *app) serve(ctx context.Context) error {
	opts, err := a.viewOptions()
	if err != nil {
		return err
	}
	mode, err := engine.ParseMode(a.cfg.Table.Mode)
	if err != nil {
		return err
	}
	ttl, err := a.cfg.SessionTTL()
	if err != nil {
		return err
	}

	h := api.NewHandler(nil, api.Settings{
		Mode:        mode,
		Options:     opts,
		SessionTTL:  ttl,
		MaxSessions: a.cfg.Server.MaxSessions,
	}, a.log)
	defer h.Close()

	e := api.NewServer(h, a.log, a.cfg.Server.RateLimit)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("loading data in background")
		store, err := a.loadStore()
		if err != nil {
			return err
		}
		h.SetStore(store)
		a.log.WithField("records", store.Len()).Info("data ready, API fully live")
		return nil
	})

	g.Go(func() error {
		a.log.WithField("listen", a.cfg.Server.Listen).Info("server ready")
		if err := e.Start(a.cfg.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
