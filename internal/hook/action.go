package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hookgate/hookgate/internal/constants"
	"github.com/hookgate/hookgate/internal/logger"
)

// logTimestampFormat is the timestamp layout for log entries (local time
// with numeric zone offset).
const logTimestampFormat = "2006-01-02T15:04:05-07:00"

// Executor runs the action of a matched rule and produces the outcome.
// Exactly one action executes per event; actions are never chained.
type Executor struct {
	// Env supplies the home directory for ~ expansion in log paths.
	Env Env
	// Warnings receives non-fatal action diagnostics (failed log writes).
	// Write failures during logging never block the tool invocation.
	Warnings io.Writer
	// Now supplies log entry timestamps; tests override it.
	Now func() time.Time
}

// NewExecutor returns an executor warning to stderr with wall-clock time.
func NewExecutor(env Env) *Executor {
	return &Executor{Env: env, Warnings: os.Stderr, Now: time.Now}
}

// Execute performs the matched rule's action. The dispatch is exhaustive
// over the closed Action set.
func (e *Executor) Execute(m *MatchResult, event Event) Outcome {
	switch m.Rule.Action {
	case ActionBlock:
		return e.block(m)
	case ActionTransform:
		return e.transform(m, event)
	case ActionRun:
		return e.run(m)
	case ActionLog:
		return e.log(m, event)
	}
	return Allow()
}

func (e *Executor) block(m *MatchResult) Outcome {
	return Block(m.Context.Expand(m.Rule.Message))
}

func (e *Executor) transform(m *MatchResult, event Event) Outcome {
	t := m.Rule.Transform
	rewritten := replaceFirst(t.Pattern, m.Context.Command, t.Replacement)
	logger.Debug("command transformed", "rule", m.Rule.Name, "from", m.Context.Command, "to", rewritten)
	return Transformed(event, rewritten)
}

// replaceFirst substitutes the first match of the pattern, expanding $1-style
// group references in the replacement. The whole string is returned unchanged
// when the pattern does not match.
func replaceFirst(pattern *regexp.Regexp, s, replacement string) string {
	loc := pattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	out := make([]byte, 0, len(s))
	out = append(out, s[:loc[0]]...)
	out = pattern.ExpandString(out, replacement, s, loc)
	out = append(out, s[loc[1]:]...)
	return string(out)
}

func (e *Executor) run(m *MatchResult) Outcome {
	command := m.Context.Expand(m.Rule.RunCommand)
	dir := m.Context.Expand(m.Rule.WorkingDir)

	cmd := exec.Command("sh", "-c", command)
	if dir != "" {
		cmd.Dir = dir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("running command", "rule", m.Rule.Name, "command", command, "dir", dir)
	err := cmd.Run()
	if err == nil {
		return Allow()
	}
	if m.Rule.OnError == OnErrorIgnore {
		logger.Debug("command failed, ignored per on_error", "rule", m.Rule.Name, "error", err)
		return Allow()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return Block(fmt.Sprintf("command failed: %s", detail))
	}
	return Block(fmt.Sprintf("failed to run command: %v", err))
}

func (e *Executor) log(m *MatchResult, event Event) Outcome {
	path := expandHome(m.Context.Expand(m.Rule.LogFile), e.Env.Home)
	entry := formatLogEntry(m.Rule.LogFormat, event, m.Context, e.Now())

	if err := appendLogEntry(path, entry); err != nil {
		// Logging observes the tool invocation; it must never block it.
		fmt.Fprintf(e.Warnings, "Warning: failed to write log entry to %s: %v\n", path, err)
	}
	return Allow()
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path, home string) string {
	if home == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	return home + path[1:]
}

type jsonLogEntry struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Tool      string `json:"tool"`
	Command   string `json:"command"`
	FilePath  string `json:"file_path"`
}

func formatLogEntry(format LogFormat, event Event, ctx *Context, now time.Time) string {
	timestamp := now.Format(logTimestampFormat)

	if format == LogJSON {
		data, err := json.Marshal(jsonLogEntry{
			Timestamp: timestamp,
			Event:     string(event),
			Tool:      ctx.ToolName,
			Command:   ctx.Command,
			FilePath:  ctx.FilePath,
		})
		if err != nil {
			return ""
		}
		return string(data)
	}

	content := ctx.Command
	if content == "" {
		content = ctx.FilePath
	}
	return fmt.Sprintf("[%s] %s %s: %s", timestamp, event, ctx.ToolName, content)
}

func appendLogEntry(path, entry string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, constants.DirMode); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(entry + "\n")
	return err
}
