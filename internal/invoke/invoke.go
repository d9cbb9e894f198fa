// Package invoke assembles the --tool-args payload and runs the external MCP
// client. ytmenu never talks to YouTrack or to the MCP server directly; one
// child process is spawned per invocation and awaited to completion.
package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"ytmenu/internal/catalog"
	"ytmenu/internal/config"
	"ytmenu/internal/credentials"
	"ytmenu/internal/logging"
)

// Payload is the JSON object passed to the client via --tool-args.
//
// The client's invocation contract keeps kwargs as a JSON-encoded string, not
// a nested object, so the kwargs map is marshalled twice.
type Payload struct {
	Name   string `json:"name"`
	Args   string `json:"args"`
	Kwargs string `json:"kwargs"`
}

// BuildToolArgs serializes the tool name, positional argument string and
// keyword arguments into the single JSON string the client expects. Empty
// kwargs encode as "{}", absent positional args as "".
func BuildToolArgs(name, args string, kwargs map[string]any) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("tool name is required")
	}

	kw := "{}"
	if len(kwargs) > 0 {
		b, err := json.Marshal(kwargs)
		if err != nil {
			return "", fmt.Errorf("failed to encode keyword arguments: %w", err)
		}
		kw = string(b)
	}

	b, err := json.Marshal(Payload{Name: name, Args: args, Kwargs: kw})
	if err != nil {
		return "", fmt.Errorf("failed to encode tool arguments: %w", err)
	}

	// The payload crosses a process boundary as an opaque flag value, so
	// make certain it round-trips before anything is spawned.
	if !json.Valid(b) {
		return "", fmt.Errorf("assembled tool arguments are not valid JSON")
	}

	return string(b), nil
}

// Runner invokes tools through the configured external client binary.
type Runner struct {
	cfg    *config.Config
	creds  credentials.Store
	logger *logging.AppLogger
}

func NewRunner(cfg *config.Config, creds credentials.Store, logger *logging.AppLogger) *Runner {
	return &Runner{cfg: cfg, creds: creds, logger: logger}
}

// Invoke validates the arguments against the catalog entry, spawns the client
// and returns the combined stdout/stderr text it produced.
//
// A non-zero exit with captured output is not fatal: the client prints its
// error details to the same stream, and the post-processor is the component
// that decides what to show. Empty captured output is always an error.
func (r *Runner) Invoke(ctx context.Context, tool catalog.Tool, args string, kwargs map[string]any) (string, error) {
	if err := tool.Validate(kwargs); err != nil {
		return "", err
	}

	payload, err := BuildToolArgs(tool.Name, args, kwargs)
	if err != nil {
		return "", err
	}

	return r.Run(ctx, tool.Name, payload)
}

// Run executes the client with a pre-assembled --tool-args payload.
func (r *Runner) Run(ctx context.Context, toolName, payload string) (string, error) {
	if err := r.cfg.Validate(); err != nil {
		return "", fmt.Errorf("configuration is incomplete: %w", err)
	}

	// Callers may hand in a pre-assembled payload; a malformed one must never
	// reach the child process.
	if !json.Valid([]byte(payload)) {
		return "", fmt.Errorf("tool arguments payload is not valid JSON")
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, r.cfg.ClientBin,
		"--config", r.cfg.ClientConfig,
		"--mcp-name", r.cfg.MCPName,
		"--tool-args", payload,
	)
	cmd.Env = r.childEnv()

	// The client interleaves logging and results on both streams; capture
	// them combined through a temp file, which is removed unconditionally.
	capture, err := os.CreateTemp("", "ytmenu-capture-*.out")
	if err != nil {
		return "", fmt.Errorf("failed to create capture file: %w", err)
	}
	defer os.Remove(capture.Name())
	defer capture.Close()

	cmd.Stdout = capture
	cmd.Stderr = capture

	start := time.Now()
	runErr := cmd.Run()
	r.logger.LogInvocation(toolName, start, runErr)

	if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
		return "", fmt.Errorf("tool %q timed out after %s", toolName, r.cfg.Timeout())
	}

	raw, err := os.ReadFile(capture.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read captured output: %w", err)
	}

	output := string(raw)
	if strings.TrimSpace(output) == "" {
		if runErr != nil {
			return "", fmt.Errorf("client produced no output: %w", runErr)
		}
		return "", fmt.Errorf("captured output was empty")
	}

	if runErr != nil {
		// Output is still worth post-processing; the exit status only gets logged.
		r.logger.Warn("Client exited with error but produced output", "tool", toolName, "error", runErr)
	}

	return output, nil
}

// childEnv extends the current environment with the YouTrack credentials the
// server-side component reads.
func (r *Runner) childEnv() []string {
	env := os.Environ()

	if r.cfg.YouTrackURL != "" {
		env = append(env, "YOUTRACK_URL="+r.cfg.YouTrackURL)
	}
	if r.creds != nil && r.creds.HasToken() {
		if token, err := r.creds.GetToken(); err == nil {
			env = append(env, "YOUTRACK_API_TOKEN="+token)
		} else {
			r.logger.Warn("Token present but could not be read from credential store", "error", err)
		}
	}

	return env
}
