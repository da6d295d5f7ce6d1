// Package config holds the run configuration, loaded from flags with
// environment and YAML file fallbacks.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"indexgen/internal/listing"
	"indexgen/internal/wrap"
)

// Login page themes.
const (
	ThemePlain    = wrap.ThemePlain
	ThemeAnimated = wrap.ThemeAnimated
)

// DefaultFooter is shown on the login page when no footer is configured.
const DefaultFooter = wrap.DefaultFooter

var (
	ErrPasswordRequired = errors.New("password is required, use --password to specify")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrBadFilter        = errors.New("invalid filter pattern")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Config is immutable once Load returns.
type Config struct {
	TopDir   string `yaml:"top_dir"`
	Password string `yaml:"password"`
	Filter   string `yaml:"filter"`
	Footer   string `yaml:"footer"`
	Theme    string `yaml:"theme"`

	Verbose bool `yaml:"verbose"`
	DryRun  bool `yaml:"dryrun"`
	Readme  bool `yaml:"readme"`

	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		TopDir:    ".",
		Footer:    DefaultFooter,
		Theme:     ThemePlain,
		LogFormat: "console",
	}
}

// Flags are the command-line values bound by BindFlags.
type Flags struct {
	fs *pflag.FlagSet

	Password  string
	Filter    string
	Footer    string
	Theme     string
	File      string
	LogFormat string
	Verbose   bool
	DryRun    bool
	Readme    bool
}

// BindFlags registers all options on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVarP(&f.Password, "password", "p", "", "password for the top-level index page (required)")
	fs.StringVarP(&f.Filter, "filter", "f", "", "only include files matching glob, e.g. \"*.pdf\"")
	fs.StringVarP(&f.Footer, "footer", "b", d.Footer, "footer text to display on the login page")
	fs.StringVarP(&f.Theme, "theme", "t", d.Theme, "login page theme: plain or animated")
	fs.StringVarP(&f.File, "config", "c", "", "YAML config file")
	fs.StringVar(&f.LogFormat, "log-format", d.LogFormat, "log format: console or json")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "log every processed directory and written file")
	fs.BoolVarP(&f.DryRun, "dryrun", "d", false, "don't write any files, just simulate the traversal")
	fs.BoolVar(&f.Readme, "readme", false, "render README.md above each listing")
	return f
}

// Load resolves the configuration. Precedence: flags, environment, config
// file, defaults. args are the positional arguments; the first one is the
// top directory.
func Load(f *Flags, args []string) (Config, error) {
	cfg := Default()

	if f.File != "" {
		if err := loadFile(f.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Password = envOr("INDEXGEN_PASSWORD", cfg.Password)
	cfg.Footer = envOr("INDEXGEN_FOOTER", cfg.Footer)
	cfg.Theme = envOr("INDEXGEN_THEME", cfg.Theme)
	cfg.Filter = envOr("INDEXGEN_FILTER", cfg.Filter)
	cfg.Verbose = envBool("INDEXGEN_VERBOSE", cfg.Verbose)

	if f.changed("password") {
		cfg.Password = f.Password
	}
	if f.changed("filter") {
		cfg.Filter = f.Filter
	}
	if f.changed("footer") {
		cfg.Footer = f.Footer
	}
	if f.changed("theme") {
		cfg.Theme = f.Theme
	}
	if f.changed("log-format") {
		cfg.LogFormat = f.LogFormat
	}
	if f.changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if f.changed("dryrun") {
		cfg.DryRun = f.DryRun
	}
	if f.changed("readme") {
		cfg.Readme = f.Readme
	}

	if len(args) > 0 && args[0] != "" {
		cfg.TopDir = args[0]
	}
	if cfg.TopDir == "" || cfg.TopDir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cfg.TopDir = wd
	}
	if cfg.Footer == "" {
		cfg.Footer = DefaultFooter
	}

	return cfg, cfg.Validate()
}

// Validate reports usage errors. It must pass before any traversal starts.
func (c Config) Validate() error {
	if c.Password == "" {
		return ErrPasswordRequired
	}
	switch c.Theme {
	case ThemePlain, ThemeAnimated:
	default:
		return fmt.Errorf("%w %q: want %s or %s", ErrInvalidTheme, c.Theme, ThemePlain, ThemeAnimated)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w %q: want console or json", ErrInvalidLogFormat, c.LogFormat)
	}
	if c.Filter != "" {
		if _, err := listing.MatchGlob(c.Filter, ""); err != nil {
			return fmt.Errorf("%w %q: %v", ErrBadFilter, c.Filter, err)
		}
	}
	return nil
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

func loadFile(name string, cfg *Config) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", name, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
