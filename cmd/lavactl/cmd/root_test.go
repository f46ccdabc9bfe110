package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlava/openlava-go/internal/lavactl"
)

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range RootCmd().Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"jobs", "submit", "modify", "events", "queues", "hosts", "users", "cluster", "version"})
}

func TestInitParams_FromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lavactl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("daemonUrl: batch1:50061\nforceNoTls: true\nopenRetryDelay: 250ms\n"), 0o600))

	root := RootCmd()
	require.NoError(t, root.ParseFlags([]string{"--config", path}))
	params := lavactl.New().Params
	require.NoError(t, initParams(root, params))

	assert.Equal(t, "batch1:50061", params.DaemonConnectionDetails.DaemonUrl)
	assert.True(t, params.DaemonConnectionDetails.ForceNoTls)
	assert.Equal(t, "lavactl", params.DaemonConnectionDetails.AppName)
	assert.Equal(t, uint(3), params.OpenAttempts)
	assert.Equal(t, 250*time.Millisecond, params.OpenRetryDelay)
}
