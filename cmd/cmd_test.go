package cmd

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerdwave-nick/multiverse/internal/cache"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	registerFlags(cmd, opts)
	return cmd
}

func defaults(t *testing.T) *RootOptions {
	t.Helper()
	opts := &RootOptions{}
	require.NoError(t, newTestCommand(opts).ParseFlags(nil))
	return opts
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "multiverse.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	opts := defaults(t)
	require.NoError(t, opts.Validate())
	assert.Equal(t, cacheModeNone, opts.CacheMode)
	assert.Equal(t, 8080, opts.Port)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	opts := defaults(t)
	opts.Port = 0
	opts.SessionTTL = 0
	opts.CacheMode = "sometimes"

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port must be greater than 0")
	assert.Contains(t, err.Error(), "session-ttl must be greater than 0")
	assert.Contains(t, err.Error(), "cache must be one of")
}

func TestValidateLayeredCache(t *testing.T) {
	opts := defaults(t)
	opts.CacheMode = cacheModeLayered
	require.NoError(t, opts.Validate())

	opts.L2Backend = l2Redis
	opts.RedisAddr = ""
	assert.ErrorContains(t, opts.Validate(), "redis-addr can't be empty")

	opts.L2Backend = "floppy"
	assert.ErrorContains(t, opts.Validate(), "l2 must be one of")
}

func TestConfigFile(t *testing.T) {
	opts := &RootOptions{}
	cmd := newTestCommand(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9000"}))

	path := writeConfig(t, `
port = 7000
cache = "memory"
l1-size = 50
allowed-origins = ["http://a.example", "http://b.example"]
`)
	require.NoError(t, applyConfigFile(cmd, path))

	assert.Equal(t, 9000, opts.Port, "command line wins")
	assert.Equal(t, cacheModeMemory, opts.CacheMode)
	assert.Equal(t, 50, opts.L1CacheSize)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, opts.AllowedOrigins)
	assert.Equal(t, 7200, opts.L1CacheTTL, "untouched options keep their default")
}

func TestConfigFileErrors(t *testing.T) {
	opts := &RootOptions{}
	cmd := newTestCommand(opts)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.ErrorContains(t, applyConfigFile(cmd, writeConfig(t, `colour = "blue"`)), "unknown option")
	assert.ErrorContains(t, applyConfigFile(cmd, writeConfig(t, `port = "many"`)), `option "port"`)
	assert.Error(t, applyConfigFile(cmd, writeConfig(t, `port = `)))
	assert.Error(t, applyConfigFile(cmd, filepath.Join(t.TempDir(), "missing.toml")))
}

func TestBuildCache(t *testing.T) {
	ctx := context.Background()

	opts := defaults(t)
	c, closeCache, err := buildCache(ctx, opts)
	require.NoError(t, err)
	assert.IsType(t, cache.NoopCache{}, c)
	closeCache()

	opts.CacheMode = cacheModeMemory
	c, closeCache, err = buildCache(ctx, opts)
	require.NoError(t, err)
	assert.IsType(t, &cache.OtterCache{}, c)
	closeCache()

	opts.CacheMode = cacheModeLayered
	opts.DBPath = t.TempDir()
	c, closeCache, err = buildCache(ctx, opts)
	require.NoError(t, err)
	assert.IsType(t, &cache.MultiLayerCache{}, c)
	require.NoError(t, c.Set("pokemon/pikachu", map[string]string{"name": "pikachu"}))
	var got map[string]string
	found, err := c.Get("pokemon/pikachu", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pikachu", got["name"])
	closeCache()
}

func TestServerWriteTimeoutFollowsFetchTimeout(t *testing.T) {
	opts := defaults(t)
	server := newServer(opts, http.NotFoundHandler())
	assert.Equal(t, ":8080", server.Addr)
	assert.Equal(t, 60*time.Second, server.WriteTimeout)

	opts.FetchTimeout = 0
	server = newServer(opts, http.NotFoundHandler())
	assert.Zero(t, server.WriteTimeout)
	assert.Equal(t, 5*time.Second, server.ReadTimeout)
}
