package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eshaffer321/ezbookkeeping-go/pkg/ezbookkeeping"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ezbookkeeping.EnvURL,
		ezbookkeeping.EnvToken,
		ezbookkeeping.EnvTimezoneOffset,
		ezbookkeeping.EnvDefaultCurrency,
		ezbookkeeping.EnvSentryDSN,
		ezbookkeeping.EnvDebug,
		ezbookkeeping.EnvMaxRetries,
	} {
		t.Setenv(key, "")
	}
}

func TestRun_MissingConfiguration(t *testing.T) {
	clearEnv(t)

	err := run(context.Background(), nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ezbookkeeping.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "missing required configuration: EZBOOKKEEPING_URL, EZBOOKKEEPING_TOKEN")
}

func TestRun_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	err := run(context.Background(), []string{"-env", filepath.Join(t.TempDir(), "absent.env")}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load settings")
}

func TestRun_BadFlag(t *testing.T) {
	err := run(context.Background(), []string{"-nope"}, nil)
	assert.Error(t, err)
}

func TestRun_ServesUntilCanceled(t *testing.T) {
	clearEnv(t)
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("EZBOOKKEEPING_URL=http://127.0.0.1:1\nEZBOOKKEEPING_TOKEN=t\n"), 0o600))
	require.NoError(t, os.Unsetenv(ezbookkeeping.EnvURL))
	require.NoError(t, os.Unsetenv(ezbookkeeping.EnvToken))

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, []string{"-env", envPath}, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 2)

	cancel()
	_ = session.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
