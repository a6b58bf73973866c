package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/render"
)

// EnvPrefix marks environment variables read into the configuration.
// DOCFORM_SERVER_ADDR maps to server.addr.
const EnvPrefix = "DOCFORM_"

// DefaultPaths are probed in order when no config file is given.
var DefaultPaths = []string{"./docform.toml", "$HOME/.docform.toml"}

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Registry RegistryConfig `koanf:"registry"`
	Session  SessionConfig  `koanf:"session"`
	Output   OutputConfig   `koanf:"output"`
	Log      LogConfig      `koanf:"log"`
	Theme    ThemeConfig    `koanf:"theme"`
}

type ServerConfig struct {
	Addr          string        `koanf:"addr"`
	ShutdownGrace time.Duration `koanf:"shutdown_grace"`
	Locale        string        `koanf:"locale"`
}

type DataConfig struct {
	Dir string `koanf:"dir"`
	// Presets points to an optional JSON file of field defaults.
	Presets string `koanf:"presets"`
}

type RegistryConfig struct {
	// File is a YAML or JSON registry; empty uses the built-in table.
	File    string `koanf:"file"`
	Default string `koanf:"default"`
}

type SessionConfig struct {
	TTL    time.Duration `koanf:"ttl"`
	Size   int           `koanf:"size"`
	Secure bool          `koanf:"secure"`
}

type OutputConfig struct {
	Field   string `koanf:"field"`
	Pattern string `koanf:"pattern"`
	Default string `koanf:"default"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ThemeConfig struct {
	Variant   string `koanf:"variant"`
	Templates string `koanf:"templates"`
}

// Naming converts the output section into exporter naming rules.
func (c OutputConfig) Naming() render.Naming {
	return render.Naming{Field: c.Field, Pattern: c.Pattern, Default: c.Default}
}

func defaults() map[string]any {
	naming := render.DefaultNaming()
	return map[string]any{
		"server.addr":           ":8050",
		"server.shutdown_grace": 5 * time.Second,
		"server.locale":         render.DefaultLocale,
		"data.dir":              "data",
		"data.presets":          "",
		"registry.file":         "",
		"registry.default":      registry.DefaultLabel,
		"session.ttl":           30 * time.Minute,
		"session.size":          1024,
		"session.secure":        false,
		"output.field":          naming.Field,
		"output.pattern":        naming.Pattern,
		"output.default":        naming.Default,
		"log.level":             "info",
		"log.format":            "console",
		"theme.variant":         "light",
		"theme.templates":       "",
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// LoadConfig loads defaults, then the TOML file, then DOCFORM_ variables.
// An empty configPath probes DefaultPaths and skips missing files; an explicit
// path must exist.
func LoadConfig(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", configPath, err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// envKey maps DOCFORM_SESSION_TTL to session.ttl. Only the first underscore
// after the prefix separates the section, so keys may contain underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: configuration is nil")
	}
	var errs []error
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if cfg.Server.ShutdownGrace < 0 {
		errs = append(errs, errors.New("server.shutdown_grace must not be negative"))
	}
	if strings.TrimSpace(cfg.Data.Dir) == "" {
		errs = append(errs, errors.New("data.dir is required"))
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if cfg.Session.Size <= 0 {
		errs = append(errs, errors.New("session.size must be positive"))
	}
	if strings.TrimSpace(cfg.Output.Field) == "" {
		errs = append(errs, errors.New("output.field is required"))
	}
	if strings.Count(cfg.Output.Pattern, "%s") != 1 {
		errs = append(errs, fmt.Errorf("output.pattern %q must contain exactly one %%s", cfg.Output.Pattern))
	}
	if strings.TrimSpace(cfg.Output.Default) == "" {
		errs = append(errs, errors.New("output.default is required"))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q is invalid", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", cfg.Log.Format))
	}
	switch cfg.Theme.Variant {
	case "", "light", "dark":
	default:
		errs = append(errs, fmt.Errorf("theme.variant %q must be light or dark", cfg.Theme.Variant))
	}
	if dir := cfg.Theme.Templates; dir != "" {
		if _, err := os.Stat(filepath.Join(dir, "templates", "page.tmpl")); err != nil {
			errs = append(errs, fmt.Errorf("theme.templates %q has no templates/page.tmpl", dir))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
}

const sampleConfig = `# docform configuration

[server]
addr = ":8050"
shutdown_grace = "5s"
locale = "vi"

[data]
dir = "data"
# presets = "data/presets.json"

[registry]
# file = "registry.yaml"
default = "Mẫu 5a: Công văn hành chính (Khi gửi đến 1 cơ quan, đơn vị)"

[session]
ttl = "30m"
size = 1024
secure = false

[output]
field = "so_ky_hieu"
pattern = "cong_van_%s.docx"
default = "van_ban_hoan_thanh.docx"

[log]
level = "info"
format = "console"

[theme]
variant = "light"
# Directory with templates/page.tmpl and templates/partials to replace the
# built-in dashboard.
# templates = "dashboard"
`

// Sample returns the configuration written by InitConfig.
func Sample() string {
	return sampleConfig
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config: file already exists at %s", configPath)
	}
	if err := os.WriteFile(configPath, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", configPath, err)
	}
	return nil
}
