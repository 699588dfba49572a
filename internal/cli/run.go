package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/duotone/internal/engine"
	"github.com/bnema/duotone/internal/infrastructure/config"
	"github.com/bnema/duotone/internal/infrastructure/dbusaction"
	"github.com/bnema/duotone/internal/infrastructure/filesystem"
	"github.com/bnema/duotone/internal/infrastructure/glibloop"
	"github.com/bnema/duotone/internal/infrastructure/gsettings"
	"github.com/bnema/duotone/internal/logging"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the synchronization daemon",
		Long: `Run the daemon: watch the live appearance settings, keep the
per-mode sets up to date, and re-apply the right set on every mode
switch. Exits cleanly on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd.Context())
		},
	}
}

func runDaemon(ctx context.Context) error {
	mgr, cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	ctx = logging.WithContext(ctx, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := glibloop.Dispatcher{}
	loop := glibloop.NewLoop()

	// The service toggles through the engine; the engine publishes its
	// shortcut list through the service. Both live on the same loop.
	var eng *engine.Engine
	svc := dbusaction.NewService(dispatcher, func() {
		if eng != nil {
			eng.Toggle()
		}
	}, logger)

	eng = engine.New(engine.Deps{
		Stores:     gsettings.NewProvider(logger),
		FS:         filesystem.New(),
		Dispatcher: dispatcher,
		Publisher:  svc,
		Logger:     logger,
		Config:     engineConfig(cfg),
	})

	if err := eng.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.Stop()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start bus service: %w", err)
	}
	defer svc.Stop()

	mgr.OnConfigChange(func(_ *config.Config) {
		logger.Info().Msg("config file changed, engine settings apply on next start")
	})
	mgr.Watch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		loop.Quit()
		return nil
	})

	logger.Info().
		Str("mode", eng.Mode().String()).
		Msg("duotone daemon running")
	loop.Run()

	stop()
	return g.Wait()
}
