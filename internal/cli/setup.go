package cli

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/duotone/internal/engine"
	"github.com/bnema/duotone/internal/infrastructure/config"
	"github.com/bnema/duotone/internal/logging"
)

// loadConfig loads the effective configuration and builds the logger
// from it. Shared by every subcommand that touches the engine.
func loadConfig() (*config.Manager, *config.Config, zerolog.Logger, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	if err := mgr.Load(); err != nil {
		return nil, nil, zerolog.Nop(), err
	}
	cfg := mgr.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	return mgr, cfg, logger, nil
}

// engineConfig maps the file configuration onto the engine's own config.
func engineConfig(cfg *config.Config) engine.Config {
	return engine.Config{
		BackgroundSchema: cfg.Schemas.Background,
		InterfaceSchema:  cfg.Schemas.Interface,
		UserThemeSchema:  cfg.Schemas.UserTheme,
		PrivateSchema:    cfg.Schemas.Private,
		DebounceDelay:    time.Duration(cfg.Engine.DebounceMs) * time.Millisecond,
		Bidirectional:    cfg.Engine.Bidirectional,
	}
}

// inlineDispatcher runs posted work immediately. One-shot commands have
// no main loop, and nothing concurrent posts to them.
type inlineDispatcher struct{}

func (inlineDispatcher) Post(fn func()) { fn() }
