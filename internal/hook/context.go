package hook

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hookgate/hookgate/internal/constants"
	"github.com/hookgate/hookgate/internal/logger"
)

// Env is a snapshot of the ambient process state the context builder needs.
// Capturing it once up front keeps BuildContext a pure function of
// (Input, Env), so tests never have to fake the real environment.
type Env struct {
	// Cwd is the process working directory.
	Cwd string
	// WorkspaceRoot is the CLAUDE_PROJECT_DIR override; empty if unset.
	WorkspaceRoot string
	// Branch is the current git branch; empty when resolution failed.
	Branch string
	// Home is the user home directory, used for ~ expansion in log paths.
	Home string
}

// CaptureEnv snapshots the working directory, environment overrides, and the
// current git branch. Every lookup is best-effort: a failure leaves the
// field empty and is never surfaced.
func CaptureEnv() Env {
	cwd, err := os.Getwd()
	if err != nil {
		logger.Debug("failed to get working directory", "error", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Debug("failed to get home directory", "error", err)
	}
	return Env{
		Cwd:           cwd,
		WorkspaceRoot: os.Getenv(constants.EnvWorkspaceRoot),
		Branch:        currentBranch(cwd),
		Home:          home,
	}
}

// currentBranch returns the current git branch in dir, or "" on any failure
// (no repository, git missing, detached HEAD errors). Failures are swallowed:
// branch-conditioned rules simply never match outside a repository.
func currentBranch(dir string) string {
	if branch := os.Getenv(constants.EnvBranch); branch != "" {
		return branch
	}

	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		logger.Debug("branch resolution failed", "error", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Context is the read-only bag of template variables resolved for one event.
type Context struct {
	Command       string
	FilePath      string
	FileDir       string
	WorkspaceRoot string
	ToolName      string
	Branch        string
}

// BuildContext resolves every template variable from the input and the
// environment snapshot. Resolution order is fixed: file_dir depends on
// file_path, and both file_dir and workspace_root fall back to the working
// directory.
func BuildContext(input *Input, env Env) *Context {
	ctx := &Context{
		ToolName: input.ToolName,
		Command:  input.ToolInput.Command,
		FilePath: input.ToolInput.FilePath,
		Branch:   env.Branch,
	}

	if ctx.FilePath != "" {
		ctx.FileDir = filepath.Dir(ctx.FilePath)
	} else {
		ctx.FileDir = env.Cwd
	}

	if env.WorkspaceRoot != "" {
		ctx.WorkspaceRoot = env.WorkspaceRoot
	} else {
		ctx.WorkspaceRoot = env.Cwd
	}

	return ctx
}

// templateToken matches ${name} substitution tokens.
var templateToken = regexp.MustCompile(`\$\{([a-z_]+)\}`)

// Expand replaces every recognized ${name} token with its resolved value.
// Expansion is single-pass: substituted values are never re-scanned, so a
// command containing the literal text "${file_path}" stays literal.
// Unrecognized tokens are left verbatim.
func (c *Context) Expand(template string) string {
	return templateToken.ReplaceAllStringFunc(template, func(token string) string {
		switch token[2 : len(token)-1] {
		case "command":
			return c.Command
		case "file_path":
			return c.FilePath
		case "file_dir":
			return c.FileDir
		case "workspace_root":
			return c.WorkspaceRoot
		case "tool_name":
			return c.ToolName
		case "branch":
			return c.Branch
		}
		return token
	})
}
