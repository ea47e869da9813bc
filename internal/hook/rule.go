package hook

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/hookgate/hookgate/internal/config"
)

// Action is the effect a matched rule produces. The set is closed: the
// executor dispatches with one exhaustive switch.
type Action int

// Action kinds
const (
	ActionBlock Action = iota
	ActionTransform
	ActionRun
	ActionLog
)

func (a Action) String() string {
	switch a {
	case ActionBlock:
		return "block"
	case ActionTransform:
		return "transform"
	case ActionRun:
		return "run"
	case ActionLog:
		return "log"
	}
	return "unknown"
}

func parseAction(s string) (Action, bool) {
	switch s {
	case "block":
		return ActionBlock, true
	case "transform":
		return ActionTransform, true
	case "run":
		return ActionRun, true
	case "log":
		return ActionLog, true
	}
	return 0, false
}

// OnError governs whether a failed run subprocess is swallowed or surfaced.
type OnError int

const (
	OnErrorIgnore OnError = iota
	OnErrorFail
)

// LogFormat selects the log entry encoding for log rules.
type LogFormat int

const (
	LogText LogFormat = iota
	LogJSON
)

// WhenClause holds the pre-compiled conditional filters of a rule.
// Alternatives within one field are OR-combined; fields are AND-combined.
type WhenClause struct {
	Command  []*regexp.Regexp
	FilePath []*regexp.Regexp
	// Branch entries are compared for exact equality, not regex search.
	Branch []string
}

// TransformRule is the compiled pattern/replacement pair of a transform rule.
type TransformRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// CompiledRule is a validated, ready-to-evaluate rule. All regexes are
// compiled eagerly at load time; the matcher never compiles anything.
type CompiledRule struct {
	Name     string
	Event    Event
	Matcher  *regexp.Regexp
	Action   Action
	Priority int

	// Message is the block message template.
	Message string
	// When filters, nil when the rule is unconditional.
	When *WhenClause
	// Transform is set iff Action == ActionTransform.
	Transform *TransformRule
	// RunCommand and WorkingDir are templates for run rules.
	RunCommand string
	WorkingDir string
	OnError    OnError
	// LogFile is the path template for log rules.
	LogFile   string
	LogFormat LogFormat
}

// defaultWorkingDir is the working_dir template applied when a run rule
// leaves it unset.
const defaultWorkingDir = "${file_dir}"

// CompileRules validates and compiles every raw rule, failing fast on the
// first defect: priority ordering assumes a completely known rule set, so a
// partial load is never useful. The result is sorted by priority descending;
// equal priorities keep rule-name order, which makes evaluation
// deterministic even though the input is a map.
func CompileRules(raw map[string]config.Rule) ([]CompiledRule, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]CompiledRule, 0, len(raw))
	for _, name := range names {
		rule, err := compileRule(name, raw[name])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

func compileRule(name string, raw config.Rule) (CompiledRule, error) {
	event, err := ParseEvent(raw.Event)
	if err != nil {
		return CompiledRule{}, &InvalidEventError{Rule: name, Value: raw.Event}
	}

	action, ok := parseAction(raw.Action)
	if !ok {
		return CompiledRule{}, &InvalidActionError{Rule: name, Value: raw.Action}
	}

	matcher, err := regexp.Compile(raw.Matcher)
	if err != nil {
		return CompiledRule{}, &RegexError{Rule: name, Field: "matcher", Pattern: raw.Matcher, Err: err}
	}

	rule := CompiledRule{
		Name:       name,
		Event:      event,
		Matcher:    matcher,
		Action:     action,
		Priority:   raw.Priority,
		Message:    raw.Message,
		RunCommand: raw.Command,
		WorkingDir: raw.WorkingDir,
		LogFile:    raw.LogFile,
	}

	if rule.WorkingDir == "" {
		rule.WorkingDir = defaultWorkingDir
	}

	if raw.When != nil {
		when, err := compileWhen(name, raw.When)
		if err != nil {
			return CompiledRule{}, err
		}
		rule.When = when
	}

	switch raw.OnError {
	case "", "ignore":
		rule.OnError = OnErrorIgnore
	case "fail":
		rule.OnError = OnErrorFail
	default:
		return CompiledRule{}, fmt.Errorf("rule %q: invalid on_error %q (valid: ignore, fail)", name, raw.OnError)
	}

	switch raw.LogFormat {
	case "", "text":
		rule.LogFormat = LogText
	case "json":
		rule.LogFormat = LogJSON
	default:
		return CompiledRule{}, fmt.Errorf("rule %q: invalid log_format %q (valid: text, json)", name, raw.LogFormat)
	}

	switch action {
	case ActionTransform:
		pair := []string(nil)
		if raw.Transform != nil {
			pair = raw.Transform.Command
		}
		if len(pair) != 2 {
			return CompiledRule{}, &TransformError{Rule: name, Got: len(pair)}
		}
		pattern, err := regexp.Compile(pair[0])
		if err != nil {
			return CompiledRule{}, &RegexError{Rule: name, Field: "transform.command", Pattern: pair[0], Err: err}
		}
		rule.Transform = &TransformRule{Pattern: pattern, Replacement: pair[1]}

	case ActionRun:
		if raw.Command == "" {
			return CompiledRule{}, fmt.Errorf("rule %q: action is run but command is not specified", name)
		}

	case ActionLog:
		if raw.LogFile == "" {
			return CompiledRule{}, &LogFileMissingError{Rule: name}
		}
	}

	return rule, nil
}

func compileWhen(name string, raw *config.When) (*WhenClause, error) {
	when := &WhenClause{Branch: raw.Branch}

	for _, pattern := range raw.Command {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &RegexError{Rule: name, Field: "when.command", Pattern: pattern, Err: err}
		}
		when.Command = append(when.Command, re)
	}
	for _, pattern := range raw.FilePath {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &RegexError{Rule: name, Field: "when.file_path", Pattern: pattern, Err: err}
		}
		when.FilePath = append(when.FilePath, re)
	}

	return when, nil
}
