package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Outcome is the terminal result of one hook invocation: the process exit
// code plus the stdout and stderr payloads. Exit code 0 allows the tool to
// proceed, 2 blocks it; 1 is reserved for internal errors and never produced
// by an action.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Allow returns the outcome that lets the tool invocation proceed untouched.
// It is both the no-match outcome and the success outcome of run and log.
func Allow() Outcome {
	return Outcome{}
}

// Block returns the outcome that stops the tool invocation, with message on
// stderr for Claude Code to show.
func Block(message string) Outcome {
	return Outcome{ExitCode: 2, Stderr: message}
}

type specificOutput struct {
	HookEventName      string         `json:"hookEventName"`
	PermissionDecision string         `json:"permissionDecision"`
	UpdatedInput       map[string]any `json:"updatedInput"`
}

type transformEnvelope struct {
	HookSpecificOutput specificOutput `json:"hookSpecificOutput"`
}

// Transformed returns the outcome that rewrites the tool's command: exit 0
// with the fixed hookSpecificOutput envelope on stdout.
func Transformed(event Event, command string) Outcome {
	envelope := transformEnvelope{
		HookSpecificOutput: specificOutput{
			HookEventName:      string(event),
			PermissionDecision: "allow",
			UpdatedInput:       map[string]any{"command": command},
		},
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		// Marshaling a struct of strings cannot fail; allow rather than block.
		return Allow()
	}
	return Outcome{Stdout: string(data)}
}

// Emit writes the outcome's payloads to the given streams. Stdout is written
// verbatim (Claude Code parses it as JSON); stderr gets a trailing newline.
func (o Outcome) Emit(stdout, stderr io.Writer) {
	if o.Stdout != "" {
		fmt.Fprint(stdout, o.Stdout)
	}
	if o.Stderr != "" {
		fmt.Fprintln(stderr, o.Stderr)
	}
}
