package hook

import (
	"regexp"

	"github.com/hookgate/hookgate/internal/logger"
)

// MatchResult pairs the single rule selected for an event with the context
// used to select it. It passes to the executor unchanged.
type MatchResult struct {
	Rule    *CompiledRule
	Context *Context
}

// Match evaluates the compiled rules, already sorted by CompileRules, against
// one event and returns the first rule whose conditions all hold, or nil.
//
// Conditions short-circuit in a fixed order: event kind, tool-name regex,
// when.command, when.file_path, when.branch. A when.command alternative
// matches the raw command string or any simple command inside a compound
// command, so "^git push" catches "git add . && git push". Branch conditions
// are exact string equality against the resolved branch.
func Match(rules []CompiledRule, event Event, ctx *Context) *MatchResult {
	var segments []string
	segmentsReady := false

	for i := range rules {
		rule := &rules[i]
		if rule.Event != event {
			continue
		}
		if !rule.Matcher.MatchString(ctx.ToolName) {
			continue
		}
		if rule.When != nil {
			if len(rule.When.Command) > 0 {
				if !segmentsReady {
					segments = commandSegments(ctx.Command)
					segmentsReady = true
				}
				if !anyPatternMatches(rule.When.Command, ctx.Command, segments) {
					continue
				}
			}
			if len(rule.When.FilePath) > 0 && !anyPatternMatches(rule.When.FilePath, ctx.FilePath, nil) {
				continue
			}
			if len(rule.When.Branch) > 0 && !containsExact(rule.When.Branch, ctx.Branch) {
				continue
			}
		}
		logger.Debug("rule matched", "rule", rule.Name, "action", rule.Action.String(), "priority", rule.Priority)
		return &MatchResult{Rule: rule, Context: ctx}
	}

	logger.Debug("no rule matched", "event", string(event), "tool", ctx.ToolName)
	return nil
}

// commandSegments splits a compound command for segment-wise matching.
// An unparseable command falls back to raw-string matching only.
func commandSegments(command string) []string {
	segments, err := SplitCommandChain(command)
	if err != nil {
		logger.Debug("command not parseable as shell, matching raw string only", "command", command)
		return nil
	}
	return segments
}

func anyPatternMatches(patterns []*regexp.Regexp, raw string, segments []string) bool {
	for _, re := range patterns {
		if re.MatchString(raw) {
			return true
		}
		for _, segment := range segments {
			if re.MatchString(segment) {
				return true
			}
		}
	}
	return false
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
