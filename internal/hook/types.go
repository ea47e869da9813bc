// Package hook implements the core pipeline of hookgate: building the
// variable context for an event, compiling and matching rules, and executing
// the matched rule's action.
package hook

/*
Type relationships in the hook package:

Data flow:
  Input (JSON from Claude Code) + Event (CLI argument)
    → CaptureEnv() → Env snapshot
    → BuildContext() → Context (template variables)
    → Match()       → *MatchResult (at most one CompiledRule + Context)
    → Executor.Execute() → Outcome (exit code, stdout, stderr)

Related packages:
  - config.Rule: raw rule definitions compiled into CompiledRule
  - audit.Entry: logged for each decision with the matched rule
*/

import (
	"encoding/json"
	"io"
)

// Event is the hook event kind, passed as the CLI argument.
type Event string

// Hook event names
const (
	EventPreToolUse  Event = "PreToolUse"
	EventPostToolUse Event = "PostToolUse"
)

// ParseEvent parses an event name from the command line.
func ParseEvent(s string) (Event, error) {
	switch Event(s) {
	case EventPreToolUse, EventPostToolUse:
		return Event(s), nil
	}
	return "", &InvalidEventError{Value: s}
}

// ToolInputData contains the tool parameters Claude Code passes to the hook.
// Only Command and FilePath drive rule matching; the rest is carried for
// audit logging.
type ToolInputData struct {
	Command     string `json:"command,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
	Description string `json:"description,omitempty"`
	Timeout     int    `json:"timeout,omitempty"`
}

// Input represents the JSON input from Claude Code.
//
// See: https://docs.anthropic.com/en/docs/claude-code/hooks
type Input struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	PermissionMode string          `json:"permission_mode"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      ToolInputData   `json:"tool_input"`
	ToolResponse   json.RawMessage `json:"tool_response,omitempty"`
	ToolUseID      string          `json:"tool_use_id"`
}

// ParseInput reads and decodes one hook invocation from r.
func ParseInput(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputParseError{Err: err}
	}
	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, &InputParseError{Err: err}
	}
	return &input, nil
}
