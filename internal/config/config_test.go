package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		c := Default()
		c.Root = "docs"
		return c
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "missing root",
			mutate:      func(c *Config) { c.Root = "" },
			wantErr:     true,
			errContains: "document root is required",
		},
		{
			name:        "missing openapi file",
			mutate:      func(c *Config) { c.OpenAPIFile = "" },
			wantErr:     true,
			errContains: "openapi file is required",
		},
		{
			name:        "missing output dir",
			mutate:      func(c *Config) { c.OutDir = "" },
			wantErr:     true,
			errContains: "output directory is required",
		},
		{
			name:        "zero concurrency",
			mutate:      func(c *Config) { c.Concurrency = 0 },
			wantErr:     true,
			errContains: "invalid concurrency",
		},
		{
			name:   "empty public dir is valid",
			mutate: func(c *Config) { c.PublicDir = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					require.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateMissingRootIsSentinel(t *testing.T) {
	cfg := Default()
	require.ErrorIs(t, cfg.Validate(), ErrMissingRoot)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{}
	BindFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Set("root", "site"))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, "site", cfg.Root)
	require.Equal(t, "openapi.yaml", cfg.OpenAPIFile)
	require.Equal(t, "public", cfg.PublicDir)
	require.Equal(t, "openapi", cfg.OutDir)
	require.True(t, cfg.Clean)
	require.False(t, cfg.Production)
	require.Equal(t, 8, cfg.Concurrency)
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
root: ./docs
openapi-file: api.yaml
out-dir: reference
clean: false
templates:
  dir: ./tmpl
`
	err := os.WriteFile(filepath.Join(tmpDir, "scribe.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cmd := &cobra.Command{}
	BindFlags(cmd)

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, "./docs", cfg.Root)
	require.Equal(t, "api.yaml", cfg.OpenAPIFile)
	require.Equal(t, "reference", cfg.OutDir)
	require.Equal(t, "public", cfg.PublicDir)
	require.False(t, cfg.Clean)
	require.Equal(t, "./tmpl", cfg.Templates.Dir)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
root: ./docs
out-dir: reference
production: false
`
	err := os.WriteFile(filepath.Join(tmpDir, "scribe.yaml"), []byte(configContent), 0644)
	require.NoError(t, err)

	t.Chdir(tmpDir)

	cmd := &cobra.Command{}
	BindFlags(cmd)

	require.NoError(t, cmd.PersistentFlags().Set("out-dir", "api"))
	require.NoError(t, cmd.PersistentFlags().Set("production", "true"))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, "api", cfg.OutDir)
	require.True(t, cfg.Production)
	require.False(t, cfg.ShouldClean())
}

func TestLoadEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCRIBE_ROOT", "/srv/docs")
	t.Setenv("SCRIBE_OUT_DIR", "generated")
	t.Setenv("SCRIBE_CONCURRENCY", "2")
	t.Setenv("SCRIBE_TEMPLATES_DIR", "/srv/tmpl")

	cmd := &cobra.Command{}
	BindFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Set("concurrency", "4"))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, "/srv/docs", cfg.Root)
	require.Equal(t, "generated", cfg.OutDir)
	require.Equal(t, "/srv/tmpl", cfg.Templates.Dir)
	require.Equal(t, 4, cfg.Concurrency)
}

func TestLoadWithExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
root: custom
public-dir: static
`
	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cmd := &cobra.Command{}
	BindFlags(cmd)
	require.NoError(t, cmd.PersistentFlags().Set("config", configPath))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, "custom", cfg.Root)
	require.Equal(t, "static", cfg.PublicDir)
}

func TestLoadMissingRoot(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{}
	BindFlags(cmd)

	_, err := Load(cmd)
	require.ErrorIs(t, err, ErrMissingRoot)
}

func TestBuildFlagsMap(t *testing.T) {
	cmd := &cobra.Command{}
	BindFlags(cmd)

	flags := cmd.PersistentFlags()
	require.NoError(t, flags.Set("root", "docs"))
	require.NoError(t, flags.Set("openapi-file", "spec.json"))
	require.NoError(t, flags.Set("templates", "./tmpl"))
	require.NoError(t, flags.Set("clean", "false"))

	m := buildFlagsMap(cmd)

	require.Equal(t, "docs", m["root"])
	require.Equal(t, "spec.json", m["openapi-file"])
	require.Equal(t, "./tmpl", m["templates.dir"])
	require.Equal(t, false, m["clean"])
	require.NotContains(t, m, "production")
	require.NotContains(t, m, "concurrency")
	require.NotContains(t, m, "out-dir")
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SCRIBE_ROOT", "root"},
		{"SCRIBE_OUT_DIR", "out-dir"},
		{"SCRIBE_OPENAPI_FILE", "openapi-file"},
		{"SCRIBE_TEMPLATES_DIR", "templates.dir"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, envKey(tt.input))
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Root = "/srv/docs"

	require.Equal(t, filepath.Join("/srv/docs", "public", "openapi.yaml"), cfg.InputPath())
	require.Equal(t, filepath.Join("/srv/docs", "openapi"), cfg.OutputPath())

	cfg.OpenAPIFile = "/tmp/spec.yaml"
	cfg.OutDir = "/tmp/out"
	require.Equal(t, "/tmp/spec.yaml", cfg.InputPath())
	require.Equal(t, "/tmp/out", cfg.OutputPath())
}

func TestShouldClean(t *testing.T) {
	tests := []struct {
		clean, production, expected bool
	}{
		{true, false, true},
		{true, true, false},
		{false, false, false},
		{false, true, false},
	}

	for _, tt := range tests {
		cfg := Config{Clean: tt.clean, Production: tt.production}
		require.Equal(t, tt.expected, cfg.ShouldClean())
	}
}
