package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hookgate/hookgate/internal/audit"
	"github.com/hookgate/hookgate/internal/config"
	"github.com/hookgate/hookgate/internal/constants"
	"github.com/hookgate/hookgate/internal/hook"
	"github.com/spf13/cobra"
)

// runGate is the default command: it processes one hook event from stdin and
// exits with the outcome's exit code.
func runGate(cmd *cobra.Command, args []string) {
	start := time.Now()

	if len(args) != 1 {
		fatal(errors.New("missing event argument (PreToolUse or PostToolUse)"))
	}
	event, err := hook.ParseEvent(args[0])
	if err != nil {
		fatal(err)
	}

	input, err := hook.ParseInput(os.Stdin)
	if err != nil {
		fatal(err)
	}

	rules := loadRules()
	env := hook.CaptureEnv()
	ctx := hook.BuildContext(input, env)

	match := hook.Match(rules, event, ctx)
	outcome := hook.Allow()
	if match != nil {
		outcome = hook.NewExecutor(env).Execute(match, event)
	}

	outcome.Emit(os.Stdout, os.Stderr)
	logAudit(start, event, input, ctx, match, outcome, env)
	audit.Close()

	if outcome.ExitCode != 0 {
		os.Exit(outcome.ExitCode)
	}
}

// loadRules loads and compiles the rule file. A missing file is only a
// warning: the hook proceeds with zero rules and allows everything.
// Any other defect is fatal before matching starts.
func loadRules() []hook.CompiledRule {
	file, err := config.Load(configPath)
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		file = &config.File{}
	case err != nil:
		fatal(err)
	}

	rules, err := hook.CompileRules(file.Rules)
	if err != nil {
		fatal(err)
	}
	return rules
}

func logAudit(start time.Time, event hook.Event, input *hook.Input, ctx *hook.Context, match *hook.MatchResult, outcome hook.Outcome, env hook.Env) {
	entry := audit.Entry{
		Version:    audit.Version,
		SessionID:  input.SessionID,
		ToolUseID:  input.ToolUseID,
		Event:      string(event),
		ToolName:   input.ToolName,
		Command:    ctx.Command,
		FilePath:   ctx.FilePath,
		ExitCode:   outcome.ExitCode,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Cwd:        env.Cwd,
	}
	if match != nil {
		entry.Rule = match.Rule.Name
		entry.Action = match.Rule.Action.String()
	}
	audit.Log(entry)
}

// fatal reports an internal error on stderr and exits 1. Exit 1 tells
// Claude Code the hook itself failed, as opposed to exit 2 (block).
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s: error: %v\n", constants.AppName, err)
	os.Exit(1)
}
