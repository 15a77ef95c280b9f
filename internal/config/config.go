package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const (
	DefaultConfigFile = "scribe.yaml"
	EnvPrefix         = "SCRIBE_"
)

// ErrMissingRoot is returned when no document root is configured.
var ErrMissingRoot = errors.New("document root is required")

type Config struct {
	// Root is the site's document root. Input and output paths are relative to it.
	Root        string         `koanf:"root"`
	OpenAPIFile string         `koanf:"openapi-file"`
	PublicDir   string         `koanf:"public-dir"`
	OutDir      string         `koanf:"out-dir"`
	Clean       bool           `koanf:"clean"`
	Production  bool           `koanf:"production"`
	Concurrency int            `koanf:"concurrency"`
	Templates   TemplateConfig `koanf:"templates"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

func Default() Config {
	return Config{
		OpenAPIFile: "openapi.yaml",
		PublicDir:   "public",
		OutDir:      "openapi",
		Clean:       true,
		Concurrency: 8,
	}
}

// BindFlags binds the build flags to cmd.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: scribe.yaml)")
	flags.StringP("root", "r", "", "Documentation root directory")
	flags.StringP("openapi-file", "i", "", "OpenAPI document, relative to the public directory (default: openapi.yaml)")
	flags.String("public-dir", "", "Public asset directory under the root (default: public)")
	flags.StringP("out-dir", "o", "", "Output directory under the root (default: openapi)")
	flags.String("templates", "", "Custom templates directory")
	flags.Bool("clean", true, "Remove the output directory before building")
	flags.Bool("production", false, "Production build; never cleans the output directory")
	flags.Int("concurrency", 0, "Maximum parallel file writes (default: 8)")
	flags.Bool("dry-run", false, "List the files that would be written without writing them")
}

// Load merges defaults, the config file, SCRIBE_* environment variables and
// explicitly set flags, in that order of precedence.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps SCRIBE_OUT_DIR to "out-dir" and SCRIBE_TEMPLATES_DIR to
// "templates.dir".
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "templates_"); ok {
		return "templates." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	getInt := func(name string) int {
		if v, err := cmd.Flags().GetInt(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetInt(name); err == nil {
			return v
		}
		return 0
	}

	if v := getString("root"); v != "" {
		m["root"] = v
	}
	if v := getString("openapi-file"); v != "" {
		m["openapi-file"] = v
	}
	if v := getString("public-dir"); v != "" {
		m["public-dir"] = v
	}
	if v := getString("out-dir"); v != "" {
		m["out-dir"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if flagChanged("clean") {
		m["clean"] = getBool("clean")
	}
	if flagChanged("production") {
		m["production"] = getBool("production")
	}
	if flagChanged("concurrency") {
		m["concurrency"] = getInt("concurrency")
	}

	return m
}

func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrMissingRoot
	}
	if c.OpenAPIFile == "" {
		return fmt.Errorf("openapi file is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d (must be at least 1)", c.Concurrency)
	}
	return nil
}

// InputPath is the OpenAPI document location: root/public-dir/openapi-file.
// An absolute openapi-file is used as is.
func (c *Config) InputPath() string {
	if filepath.IsAbs(c.OpenAPIFile) {
		return c.OpenAPIFile
	}
	return filepath.Join(c.Root, c.PublicDir, c.OpenAPIFile)
}

// OutputPath is the generated tree's root: root/out-dir, or out-dir when absolute.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.OutDir) {
		return c.OutDir
	}
	return filepath.Join(c.Root, c.OutDir)
}

// ShouldClean reports whether the output directory is removed before a build.
// Production builds never clean.
func (c *Config) ShouldClean() bool {
	return c.Clean && !c.Production
}
