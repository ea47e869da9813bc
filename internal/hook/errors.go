package hook

import (
	"fmt"
	"strings"
)

// InputParseError reports malformed JSON on stdin.
type InputParseError struct {
	Err error
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("failed to parse input JSON: %v", e.Err)
}

func (e *InputParseError) Unwrap() error { return e.Err }

// InvalidEventError reports an unrecognized event name, either from the
// command line (Rule empty) or from a rule definition.
type InvalidEventError struct {
	Rule  string
	Value string
}

func (e *InvalidEventError) Error() string {
	valid := strings.Join([]string{string(EventPreToolUse), string(EventPostToolUse)}, ", ")
	if e.Rule == "" {
		return fmt.Sprintf("invalid event type %q (valid: %s)", e.Value, valid)
	}
	return fmt.Sprintf("rule %q: invalid event type %q (valid: %s)", e.Rule, e.Value, valid)
}

// InvalidActionError reports an unrecognized action name in a rule definition.
type InvalidActionError struct {
	Rule  string
	Value string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("rule %q: invalid action type %q (valid: block, transform, run, log)", e.Rule, e.Value)
}

// RegexError reports a pattern in a rule that failed to compile.
type RegexError struct {
	Rule    string
	Field   string
	Pattern string
	Err     error
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("rule %q: invalid regex in %s: pattern %q: %v", e.Rule, e.Field, e.Pattern, e.Err)
}

func (e *RegexError) Unwrap() error { return e.Err }

// LogFileMissingError reports a log rule without a log_file path.
type LogFileMissingError struct {
	Rule string
}

func (e *LogFileMissingError) Error() string {
	return fmt.Sprintf("rule %q: action is log but log_file is not specified", e.Rule)
}

// TransformError reports a transform rule whose transform.command is not a
// two-element [pattern, replacement] pair.
type TransformError struct {
	Rule string
	Got  int
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("rule %q: transform.command must be [pattern, replacement], got %d elements", e.Rule, e.Got)
}
