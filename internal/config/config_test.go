package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docform/pkg/registry"
)

func withoutDefaultPaths(t *testing.T) {
	t.Helper()
	saved := DefaultPaths
	DefaultPaths = nil
	t.Cleanup(func() { DefaultPaths = saved })
}

func TestLoadConfigDefaults(t *testing.T) {
	withoutDefaultPaths(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8050", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, registry.DefaultLabel, cfg.Registry.Default)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 1024, cfg.Session.Size)
	assert.Equal(t, "so_ky_hieu", cfg.Output.Field)
	assert.Equal(t, "cong_van_%s.docx", cfg.Output.Pattern)
	assert.Equal(t, "van_ban_hoan_thanh.docx", cfg.Output.Default)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "light", cfg.Theme.Variant)
	assert.NoError(t, Validate(cfg))
	assert.Equal(t, cfg, Default())
}

func TestLoadConfigPrecedence(t *testing.T) {
	withoutDefaultPaths(t)

	path := filepath.Join(t.TempDir(), "docform.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
addr = ":9000"
shutdown_grace = "2s"

[data]
dir = "/srv/docform"

[session]
ttl = "10m"

[log]
level = "debug"
`), 0o644))

	t.Setenv("DOCFORM_SERVER_ADDR", ":9100")
	t.Setenv("DOCFORM_SESSION_SIZE", "8")
	t.Setenv("DOCFORM_SERVER_SHUTDOWN_GRACE", "1s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env overrides file")
	assert.Equal(t, time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, "/srv/docform", cfg.Data.Dir, "file overrides defaults")
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 8, cfg.Session.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "untouched keys keep defaults")
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "session.ttl", envKey("DOCFORM_SESSION_TTL"))
	assert.Equal(t, "server.shutdown_grace", envKey("DOCFORM_SERVER_SHUTDOWN_GRACE"))
	assert.Equal(t, "registry.file", envKey("DOCFORM_REGISTRY_FILE"))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(nil))

	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Output.Pattern = "no-verb.docx"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Theme.Variant = "sepia"
	cfg.Session.Size = 0
	cfg.Theme.Templates = t.TempDir()

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"server.addr", "output.pattern", "log.level", "log.format", "theme.variant", "session.size", "theme.templates"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestInitConfig(t *testing.T) {
	withoutDefaultPaths(t)

	path := filepath.Join(t.TempDir(), "docform.toml")
	require.NoError(t, InitConfig(path))
	assert.Error(t, InitConfig(path), "refuses to overwrite")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
	assert.Equal(t, Default(), cfg)
}
