// Package config handles loading and parsing the hookgate rule file.
//
// The rule file is TOML whose top level is a [rules.<name>] table per rule.
// This package only deserializes; validation and regex compilation happen in
// the hook package when rules are compiled.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed hooks-rules.toml
var defaultRules []byte

// File is the root of the rule file: a mapping of rule name to definition.
type File struct {
	Rules map[string]Rule `toml:"rules"`
}

// Rule is one user-authored rule definition, exactly as written in TOML.
// Which optional fields are required depends on the action and is enforced
// at compile time.
type Rule struct {
	// Event is the hook event this rule applies to (PreToolUse or PostToolUse).
	Event string `toml:"event"`
	// Matcher is a regex matched against the tool name.
	Matcher string `toml:"matcher"`
	// Action is one of block, transform, run, or log.
	Action string `toml:"action"`
	// Priority orders rules; higher values are evaluated first. Defaults to 0.
	Priority int `toml:"priority"`
	// Message is the template shown when a block rule fires.
	Message string `toml:"message"`
	// When narrows which events the rule applies to.
	When *When `toml:"when"`
	// Transform holds the pattern/replacement pair for transform rules.
	Transform *Transform `toml:"transform"`
	// Command is the command template for run rules.
	Command string `toml:"command"`
	// WorkingDir is the directory template for run rules. Defaults to ${file_dir}.
	WorkingDir string `toml:"working_dir"`
	// OnError is "ignore" (default) or "fail" for run rules.
	OnError string `toml:"on_error"`
	// LogFile is the destination path template for log rules.
	LogFile string `toml:"log_file"`
	// LogFormat is "text" (default) or "json" for log rules.
	LogFormat string `toml:"log_format"`
}

// When holds the optional conditional filters of a rule. Alternatives within
// one field are OR-combined; fields are AND-combined.
type When struct {
	// Command holds regex alternatives matched against the command.
	Command StringOrList `toml:"command"`
	// FilePath holds regex alternatives matched against the file path.
	FilePath StringOrList `toml:"file_path"`
	// Branch holds branch names compared for exact equality.
	Branch StringOrList `toml:"branch"`
}

// Transform holds the [pattern, replacement] pair applied to the command.
type Transform struct {
	Command []string `toml:"command"`
}

// StringOrList accepts either a single TOML string or an array of strings.
type StringOrList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (s *StringOrList) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case string:
		*s = StringOrList{value}
	case []any:
		list := make(StringOrList, 0, len(value))
		for _, item := range value {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", item)
			}
			list = append(list, str)
		}
		*s = list
	default:
		return fmt.Errorf("expected string or array of strings, got %T", v)
	}
	return nil
}

// NotFoundError reports a missing rule file. Callers treat this as
// "zero rules", not a fatal error: hooks are optional.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// ParseError reports a syntactically invalid rule file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the rule file at path.
// A missing file returns *NotFoundError; a malformed one returns *ParseError.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses rule file contents. The path is used only for error messages.
func Parse(path string, data []byte) (*File, error) {
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &file, nil
}

// DefaultRules returns the embedded example rule file written by "hookgate init".
func DefaultRules() []byte {
	return defaultRules
}
