//go:build integration

package invoke

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ytmenu/internal/catalog"
	"ytmenu/internal/config"
	"ytmenu/internal/credentials"
	"ytmenu/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubClient writes a shell script that stands in for the external MCP
// client and returns its path.
func writeStubClient(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stub-client")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	require.NoError(t, err)
	return path
}

func testConfig(clientBin string) *config.Config {
	return &config.Config{
		ClientBin:      clientBin,
		ClientConfig:   "/dev/null",
		MCPName:        "youtrack",
		TimeoutSeconds: 10,
	}
}

func TestRunnerCapturesCombinedOutput(t *testing.T) {
	stub := writeStubClient(t, `
echo "INFO: connecting"
echo 'Result: {"ok": true}'
echo "DEBUG: shutting down" >&2
`)

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(testConfig(stub), credentials.NewMockManager(), logger)

	tool, ok := catalog.Find("get_projects")
	require.True(t, ok)

	output, err := runner.Invoke(context.Background(), tool, "", nil)
	require.NoError(t, err)

	assert.Contains(t, output, `Result: {"ok": true}`)
	assert.Contains(t, output, "DEBUG: shutting down", "stderr is captured too")
}

func TestRunnerPassesInvocationFlags(t *testing.T) {
	// The stub echoes its argv so the flag contract can be checked.
	stub := writeStubClient(t, `echo "$@"`)

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(testConfig(stub), credentials.NewMockManager(), logger)

	output, err := runner.Run(context.Background(), "get_issue", `{"name":"get_issue","args":"","kwargs":"{}"}`)
	require.NoError(t, err)

	assert.Contains(t, output, "--config /dev/null")
	assert.Contains(t, output, "--mcp-name youtrack")
	assert.Contains(t, output, "--tool-args")
	assert.Contains(t, output, `"name":"get_issue"`)
}

func TestRunnerEmptyOutputIsAnError(t *testing.T) {
	stub := writeStubClient(t, "exit 0")

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(testConfig(stub), credentials.NewMockManager(), logger)

	_, err := runner.Run(context.Background(), "get_issue", `{"name":"get_issue","args":"","kwargs":"{}"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestRunnerNonZeroExitWithOutputIsNotFatal(t *testing.T) {
	stub := writeStubClient(t, `
echo "ERROR: server rejected the call"
exit 3
`)

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(testConfig(stub), credentials.NewMockManager(), logger)

	output, err := runner.Run(context.Background(), "get_issue", `{"name":"get_issue","args":"","kwargs":"{}"}`)
	require.NoError(t, err)
	assert.Contains(t, output, "server rejected")
}

func TestRunnerTimeout(t *testing.T) {
	stub := writeStubClient(t, "sleep 30")

	cfg := testConfig(stub)
	cfg.TimeoutSeconds = 1

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(cfg, credentials.NewMockManager(), logger)

	_, err := runner.Run(context.Background(), "get_issue", `{"name":"get_issue","args":"","kwargs":"{}"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestRunnerExportsCredentials(t *testing.T) {
	stub := writeStubClient(t, `echo "token=$YOUTRACK_API_TOKEN url=$YOUTRACK_URL"`)

	cfg := testConfig(stub)
	cfg.YouTrackURL = "https://example.youtrack.cloud"

	creds := credentials.NewMockManager()
	require.NoError(t, creds.StoreToken("perm:abcdefghijklmnop"))

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(cfg, creds, logger)

	output, err := runner.Run(context.Background(), "get_issue", `{"name":"get_issue","args":"","kwargs":"{}"}`)
	require.NoError(t, err)
	assert.Contains(t, output, "token=perm:abcdefghijklmnop")
	assert.Contains(t, output, "url=https://example.youtrack.cloud")
}

func TestRunnerValidatesKwargs(t *testing.T) {
	stub := writeStubClient(t, `echo should-not-run`)

	logger, _ := logging.NewTestLogger()
	runner := NewRunner(testConfig(stub), credentials.NewMockManager(), logger)

	tool, ok := catalog.Find("get_issue")
	require.True(t, ok)

	// Missing required issue_id fails before anything is spawned.
	_, err := runner.Invoke(context.Background(), tool, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue_id")
}
