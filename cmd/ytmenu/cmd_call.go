package main

import (
	"context"
	"fmt"
	"strings"

	"ytmenu/internal/catalog"
	"ytmenu/internal/config"
	"ytmenu/internal/credentials"
	"ytmenu/internal/invoke"
	"ytmenu/internal/logging"
	"ytmenu/internal/render"

	"github.com/spf13/cobra"
)

var (
	callParams     []string
	callArgs       string
	callRawOutput  bool
	callNoTimeouts bool
)

// callCmd invokes a single tool without the TUI, for scripting and for
// poking at the server from a shell.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool non-interactively",
	Long: `Invoke a catalog tool once and print the post-processed result.

Keyword parameters are given as repeated --param name=value flags; list
parameters take comma-separated values and JSON parameters take a JSON
literal. A raw positional argument string can be supplied with --args.`,
	Example: `  ytmenu call get_issue --param issue_id=DEMO-123
  ytmenu call search_issues --param "query=project: DEMO #Unresolved" --param limit=5
  ytmenu call set_issue_tags --param issue_id=DEMO-123 --param tag_names=deploy,urgent`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringArrayVarP(&callParams, "param", "p", nil, "keyword parameter as name=value (repeatable)")
	callCmd.Flags().StringVar(&callArgs, "args", "", "raw positional argument string passed through verbatim")
	callCmd.Flags().BoolVar(&callRawOutput, "raw", false, "print the captured client output without post-processing")
	callCmd.Flags().BoolVar(&callNoTimeouts, "no-timeout", false, "disable the configured invocation timeout")
}

func runCall(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config (run ytmenu once to set up): %w", err)
	}

	tool, ok := catalog.Find(args[0])
	if !ok {
		return fmt.Errorf("unknown tool %q, see 'ytmenu tools' for the catalog", args[0])
	}

	kwargs, err := parseParams(tool, callParams)
	if err != nil {
		return err
	}

	if callNoTimeouts {
		// Interactive shells can wait; scripted callers opt in explicitly.
		cfg.TimeoutSeconds = 1<<31 - 1 // effectively unbounded
	}

	runner := invoke.NewRunner(cfg, credentials.NewManager(), logger)
	output, err := runner.Invoke(context.Background(), tool, callArgs, kwargs)
	if err != nil {
		return err
	}

	if callRawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(output, "\n"))
		return nil
	}

	pretty, _ := render.PostProcess(output)
	fmt.Fprintln(cmd.OutOrStdout(), pretty)
	return nil
}

// parseParams converts repeated name=value flags into typed keyword
// arguments using the tool's parameter specs.
func parseParams(tool catalog.Tool, raw []string) (map[string]any, error) {
	kwargs := make(map[string]any, len(raw))

	for _, entry := range raw {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("parameter %q is not in name=value form", entry)
		}
		name = strings.TrimSpace(name)

		param, ok := tool.Param(name)
		if !ok {
			return nil, fmt.Errorf("tool %q has no parameter %q", tool.Name, name)
		}

		typed, present, err := param.ParseValue(value)
		if err != nil {
			return nil, err
		}
		if present {
			kwargs[name] = typed
		}
	}

	return kwargs, nil
}
