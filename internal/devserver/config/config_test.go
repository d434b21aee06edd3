package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8000", c.Addr)
	assert.Equal(t, "/api/v1", c.BasePath)
	assert.Equal(t, 15*time.Minute, c.AccessTTL)
	assert.Equal(t, 168*time.Hour, c.RefreshTTL)
	assert.Equal(t, 10*time.Minute, c.CodeTTL)
	assert.Equal(t, 10*time.Minute, c.LinkTTL)
	assert.Equal(t, "scapegis.com", c.AdminDomain)
	assert.Equal(t, 3, c.SendBurst)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", ":9000", "-s", "s3cr3t", "-t", "5", "-r", "60", "-m", "corp.io", "-e", "dev"},
			expected: &Config{
				Addr: ":9000", JWTSecret: "s3cr3t", AccessTTL: 5 * time.Minute, RefreshTTL: time.Hour,
				AdminDomain: "corp.io", Env: "dev",
			},
		},
		{name: "incorrect ttl", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev.json")
	b, err := json.Marshal(map[string]any{
		"addr":       ":7000",
		"code_ttl":   "1m",
		"send_burst": 10,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	withArgs(t, "-config", path)
	c := defaults()
	parseJson(c)

	want := defaults()
	want.Addr = ":7000"
	want.CodeTTL = time.Minute
	want.SendBurst = 10
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseEnv(t *testing.T) {
	withArgs(t)
	t.Setenv("DEVSERVER_JWT_SECRET", "from-env")
	t.Setenv("DEVSERVER_LINK_TTL", "2m")

	c := defaults()
	parseEnv(c)

	assert.Equal(t, "from-env", c.JWTSecret)
	assert.Equal(t, 2*time.Minute, c.LinkTTL)
	assert.Equal(t, ":8000", c.Addr)
}
