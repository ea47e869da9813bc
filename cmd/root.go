// Package cmd implements the CLI commands for hookgate.
package cmd

import (
	"github.com/hookgate/hookgate/internal/audit"
	"github.com/hookgate/hookgate/internal/constants"
	"github.com/hookgate/hookgate/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noAuditLog bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hookgate <event>",
	Short: "Claude Code hook interceptor",
	Long: `hookgate is a Claude Code hook that reads one tool invocation as JSON from
stdin, consults a TOML rule file, and decides whether to allow, block,
rewrite, or log that invocation.

<event> is the hook event being handled: PreToolUse or PostToolUse.

Usage in ~/.claude/settings.json:
  "hooks": {
    "PreToolUse": [{
      "matcher": ".*",
      "hooks": [{"type": "command", "command": "hookgate PreToolUse"}]
    }]
  }

Exit codes: 0 allows the tool to proceed (or no rule matched), 2 blocks it,
1 signals an internal error such as a malformed rule file.`,
	Version: "0.1.0",
	Args:    cobra.ArbitraryArgs,
	// Run the hook by default when no subcommand is given
	Run: runGate,
	// Hook output is a protocol; keep cobra quiet on errors
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize before running any command
	cobra.OnInitialize(initApp)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.DefaultConfigPath, "Path to the rule file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&noAuditLog, "no-audit-log", false, "Disable audit logging")
}

// initApp initializes the application (logger, audit)
func initApp() {
	logger.Init(logger.Options{Verbose: verbose})
	audit.Init("", noAuditLog)
}
