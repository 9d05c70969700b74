// Package app wires the recognition engine to stored profiles and
// configuration, and serializes pointer events per surface.
package app

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/observability"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/surface"
)

// DefaultQueueSize is the pipeline queue length used when none is configured.
const DefaultQueueSize = 256

// Config holds configuration options for the application.
type Config struct {
	// Store is optional; without it only the built-in gestures are used.
	Store     *store.Store
	Logger    *zap.Logger
	Tap       config.TapConfig
	QueueSize int
	// Diagnostics enables per-parameter validation logging.
	Diagnostics bool
}

// ConfigFrom maps the file configuration onto an app Config.
func ConfigFrom(cfg *config.Config, s *store.Store, logger *zap.Logger) Config {
	return Config{
		Store:       s,
		Logger:      logger,
		Tap:         cfg.Gestures.Tap,
		QueueSize:   cfg.Pipeline.QueueSize,
		Diagnostics: cfg.Diagnostics.Enabled,
	}
}

// App builds surfaces with the built-in tap and every enabled profile.
type App struct {
	config   Config
	logger   *zap.Logger
	mu       sync.RWMutex
	profiles []Profile
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	return &App{
		config: cfg,
		logger: logger.Named("app"),
	}
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// LoadProfiles reads the enabled profiles from the store. Profiles whose
// thresholds do not fit their kind are logged and skipped.
func (a *App) LoadProfiles() error {
	if a.config.Store == nil {
		return nil
	}

	stored, err := a.config.Store.Profiles().ListEnabled()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]Profile, 0, len(stored))
	for _, sp := range stored {
		thresholds, err := a.config.Store.Thresholds().ListByProfile(sp.ID)
		if err != nil {
			return fmt.Errorf("failed to load thresholds of %s: %w", sp.Name, err)
		}

		p, err := CompileProfile(sp, thresholds)
		if err != nil {
			a.logger.Warn("skipping invalid profile",
				zap.String("profile", sp.Name),
				zap.Error(err))
			continue
		}
		profiles = append(profiles, p)
	}

	a.mu.Lock()
	a.profiles = profiles
	a.mu.Unlock()

	a.logger.Info("profiles loaded", zap.Int("count", len(profiles)))
	return nil
}

// Profiles returns the compiled profiles from the last LoadProfiles.
func (a *App) Profiles() []Profile {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Profile, len(a.profiles))
	copy(out, a.profiles)
	return out
}

// NewSurface returns a surface for element with the built-in tap, when
// enabled, followed by one gesture per loaded profile.
func (a *App) NewSurface(element any) (*surface.Surface, error) {
	s := surface.New(element, a.logger)

	base := gesture.Config{Element: element}
	if a.config.Diagnostics {
		diag := observability.NewGestureDiagnostics(a.logger)
		diag.Verbose = true
		base.Diagnostics = diag
	}

	if a.config.Tap.Enabled {
		cfg := base
		cfg.Overrides = TapOverrides(a.config.Tap)
		tap, err := gesture.NewTap(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build tap: %w", err)
		}
		s.Register(tap)
	}

	for _, p := range a.Profiles() {
		g, err := p.Build(base)
		if err != nil {
			return nil, fmt.Errorf("failed to build profile %s: %w", p.Name, err)
		}
		s.Register(g)
	}

	return s, nil
}

// NewPipeline returns a pipeline feeding s with the configured queue size.
func (a *App) NewPipeline(s *surface.Surface) *Pipeline {
	return NewPipeline(s, a.config.QueueSize, a.logger)
}
