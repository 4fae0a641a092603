package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Paintersrp/noted/internal/api"
	"github.com/Paintersrp/noted/internal/config"
	"github.com/Paintersrp/noted/internal/editor"
	"github.com/Paintersrp/noted/internal/feedback"
	"github.com/Paintersrp/noted/internal/flow"
	"github.com/Paintersrp/noted/internal/logging"
	"github.com/Paintersrp/noted/internal/markup"
	"github.com/Paintersrp/noted/internal/session"
	"github.com/Paintersrp/noted/internal/storage"
)

type State struct {
	Config   *config.Config
	Home     string
	Logger   *zap.Logger
	KV       storage.Store
	Sessions *session.Store
	API      *api.Client
	Editor   *editor.Session
	Renderer *markup.Renderer
	Watcher  *SessionWatcher
}

// NewState loads the config (creating an empty one on first run) and wires
// everything the commands share. configPath may be empty for the default.
func NewState(configPath string, v *viper.Viper) (*State, error) {
	s := &State{}
	if err := s.Load(configPath, v); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fills s in place. Commands are built around one *State before flags
// are parsed, so the root command calls this once parsing is done.
func (s *State) Load(configPath string, v *viper.Viper) error {
	home, err := GetHomeDir()
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(home, configPath, v)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	built, err := New(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	built.Home = home
	*s = *built
	return nil
}

// Loaded reports whether Load or New has populated s.
func (s *State) Loaded() bool {
	return s != nil && s.Config != nil
}

// NewFlows builds the sign-in, sign-up and logout flows over this state.
func (s *State) NewFlows(nav flow.Navigator, clock feedback.Clock) *flow.Flows {
	delays := flow.Delays{
		Logout: s.Config.Feedback.Logout,
		SignIn: s.Config.Feedback.SignIn,
		SignUp: s.Config.Feedback.SignUp,
	}
	return flow.New(s.API, s.Sessions, nav, clock, delays, s.Logger.Named("flow"))
}

// New builds the state from an already loaded config.
func New(cfg *config.Config, logger *zap.Logger) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kv, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	sessions := session.New(kv, logger.Named("session"))

	client, err := api.New(cfg.APIURL, sessions,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		api.WithLogger(logger.Named("api")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	s := &State{
		Config:   cfg,
		Logger:   logger,
		KV:       kv,
		Sessions: sessions,
		API:      client,
		Editor:   editor.New(client, logger.Named("editor")),
		Renderer: markup.NewRenderer(cfg.Render.Style),
	}

	if durable, ok := kv.(storage.Durable); ok {
		watcher, err := NewSessionWatcher(durable.Path(), sessions, logger.Named("watcher"))
		if err != nil {
			// the app still works, sessions just will not follow other processes
			logger.Warn("session watcher disabled", zap.Error(err))
		} else {
			s.Watcher = watcher
		}
	}

	return s, nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage == config.StorageMemory {
		return storage.NewMemoryStore(), nil
	}
	kv, err := storage.NewFileStore(cfg.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return kv, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home, configPath string, v *viper.Viper) (*config.Config, error) {
	if configPath == "" {
		configPath = config.GetConfigPath(home)
	}

	if err := config.EnsureConfigExists(configPath); err != nil {
		return nil, err
	}

	return config.Load(configPath, v)
}

// Close stops the session watcher and flushes the logger.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Logger != nil {
		// stderr sync fails on some terminals; nothing useful to report
		_ = s.Logger.Sync()
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
