package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/noted/internal/constants"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

type LogConfig struct {
	Level string `yaml:"level" json:"level" default:"info"  validate:"oneof=debug info warn error"`
	File  string `yaml:"file"  json:"file"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   json:"rps"   validate:"gte=0"`
	Burst int     `yaml:"burst" json:"burst" default:"1" validate:"gte=1"`
}

type RenderConfig struct {
	Style    string `yaml:"style"     json:"style"     default:"dracula"`
	WordWrap int    `yaml:"word_wrap" json:"word_wrap" default:"80" validate:"gte=20"`
}

// FeedbackConfig holds how long outcome messages stay up. The sign-in,
// sign-up and logout ones navigate when they expire.
type FeedbackConfig struct {
	Logout time.Duration `yaml:"logout"  json:"logout"  default:"5s" validate:"gt=0"`
	SignIn time.Duration `yaml:"sign_in" json:"sign_in" default:"3s" validate:"gt=0"`
	SignUp time.Duration `yaml:"sign_up" json:"sign_up" default:"3s" validate:"gt=0"`
	Copy   time.Duration `yaml:"copy"    json:"copy"    default:"2s" validate:"gt=0"`
}

type Config struct {
	APIURL         string          `yaml:"api_url"         json:"api_url"         default:"http://localhost:8000" validate:"required,url"`
	SessionFile    string          `yaml:"session_file"    json:"session_file"`
	Storage        string          `yaml:"storage"         json:"storage"         default:"file" validate:"oneof=file memory"`
	RequestTimeout time.Duration   `yaml:"request_timeout" json:"request_timeout" default:"15s" validate:"gt=0"`
	Log            LogConfig       `yaml:"log"             json:"log"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"      json:"rate_limit"`
	Render         RenderConfig    `yaml:"render"          json:"render"`
	Feedback       FeedbackConfig  `yaml:"feedback"        json:"feedback"`

	path string
}

var validate = validator.New()

// Load reads the YAML file at path, fills unset fields with defaults and then
// applies any keys set on v (flags and NOTED_* variables). v may be nil.
func Load(path string, v *viper.Viper) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	cfg := &Config{path: path}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
	}

	if v != nil {
		cfg.applyOverrides(v)
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to apply config defaults")
	}
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config with every default applied, rooted at home.
func Default(home string) *Config {
	return DefaultAt(GetConfigPath(home))
}

// DefaultAt is Default for a config file at path.
func DefaultAt(path string) *Config {
	cfg := &Config{path: path}
	_ = defaults.Set(cfg)
	cfg.resolvePaths(filepath.Dir(cfg.path))
	return cfg
}

func (cfg *Config) applyOverrides(v *viper.Viper) {
	if v.IsSet("api_url") {
		cfg.APIURL = v.GetString("api_url")
	}
	if v.IsSet("session_file") {
		cfg.SessionFile = v.GetString("session_file")
	}
	if v.IsSet("storage") {
		cfg.Storage = v.GetString("storage")
	}
	if v.IsSet("request_timeout") {
		cfg.RequestTimeout = v.GetDuration("request_timeout")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.file") {
		cfg.Log.File = v.GetString("log.file")
	}
	if v.IsSet("render.style") {
		cfg.Render.Style = v.GetString("render.style")
	}
}

// resolvePaths puts the session and log files next to the config file unless
// they were set, and expands a leading "~/".
func (cfg *Config) resolvePaths(dir string) {
	home, _ := os.UserHomeDir()
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(dir, constants.SessionFile)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dir, constants.LogFile)
	}
	cfg.SessionFile = expandHome(cfg.SessionFile, home)
	cfg.Log.File = expandHome(cfg.Log.File, home)
}

// Validate reports the first invalid field by its YAML key.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &InitError{
			Field: yamlKey(fe.StructNamespace()),
			msg:   "invalid value " + quote(fe.Value()) + " (" + fe.Tag() + ")",
		}
	}
	return err
}

func (cfg *Config) GetConfigPath() string {
	return cfg.path
}

// Save writes the config back to its file.
func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cfg.path, data, 0o644)
}

func (cfg *Config) String() string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
