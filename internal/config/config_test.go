package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_YAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9000"
upload_dir: /srv/uploads
naming: name
max_upload_bytes: 1048576
gc:
  ttl_hours: 24
  interval_min: 30
  remove_unregistered: true
tamper:
  probability: 0.5
`), 0o644))

	t.Setenv("UPLOAD_DIR", "/tmp/override")
	t.Setenv("GC_INTERVAL_MIN", "5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/override", cfg.UploadDir)
	assert.Equal(t, "name", cfg.Naming)
	assert.Equal(t, DefaultMetaDSN, cfg.MetaDSN)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 24*time.Hour, cfg.GC.TTL())
	assert.Equal(t, 5*time.Minute, cfg.GC.Interval())
	assert.True(t, cfg.GC.RemoveUnregistered)
	assert.InDelta(t, 0.5, cfg.Tamper.Probability, 1e-9)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":7000\"\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"naming":      "naming: random\n",
		"size":        "max_upload_bytes: -1\n",
		"tamper":      "tamper:\n  probability: 2\n",
		"broken yaml": "listen_addr: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := LoadFile(path)
		assert.Error(t, err, name)
	}

	t.Setenv("MAX_UPLOAD_BYTES", "lots")
	_, err := LoadFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}
