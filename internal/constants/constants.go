// Package constants defines shared constants used across the hookgate codebase.
package constants

import "os"

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// Environment variables
const (
	// EnvWorkspaceRoot overrides the workspace_root template variable.
	// Claude Code sets this for every hook invocation.
	EnvWorkspaceRoot = "CLAUDE_PROJECT_DIR"
	// EnvBranch overrides git branch detection, mainly for tests.
	EnvBranch = "HOOKGATE_BRANCH"
)

// Application paths
const (
	AppName           = "hookgate"
	DefaultConfigPath = ".claude/hooks-rules.toml"
	AuditLogSubdir    = ".local/share/hookgate"
	AuditLogFileName  = "audit.log"
)
