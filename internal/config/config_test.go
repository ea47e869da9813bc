package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`
[rules.no-force-push]
event = "PreToolUse"
matcher = "Bash"
action = "block"
priority = 100
message = "no force pushes to ${branch}"
when = { command = ["git push.*--force"], branch = ["main", "master"] }

[rules.npm-to-bun]
event = "PreToolUse"
matcher = "Bash"
action = "transform"
transform = { command = ["^npm", "bun"] }

[rules.log-edits]
event = "PostToolUse"
matcher = "Edit|Write"
action = "log"
log_file = "~/.local/share/hookgate/edits.log"
log_format = "json"
`)

	file, err := Parse("test.toml", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(file.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(file.Rules))
	}

	block := file.Rules["no-force-push"]
	if block.Priority != 100 {
		t.Errorf("priority = %d, want 100", block.Priority)
	}
	if block.When == nil || len(block.When.Command) != 1 || len(block.When.Branch) != 2 {
		t.Errorf("when = %+v", block.When)
	}

	transform := file.Rules["npm-to-bun"]
	if transform.Transform == nil || len(transform.Transform.Command) != 2 {
		t.Errorf("transform = %+v", transform.Transform)
	}

	log := file.Rules["log-edits"]
	if log.LogFile == "" || log.LogFormat != "json" {
		t.Errorf("log rule = %+v", log)
	}
}

// when fields accept either a single string or an array of strings.
func TestStringOrList(t *testing.T) {
	data := []byte(`
[rules.single]
event = "PreToolUse"
matcher = "Bash"
action = "block"
when = { command = "^rm" }

[rules.multiple]
event = "PreToolUse"
matcher = "Bash"
action = "block"
when = { command = ["^rm", "^dd"] }
`)

	file, err := Parse("test.toml", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	single := file.Rules["single"]
	if len(single.When.Command) != 1 || single.When.Command[0] != "^rm" {
		t.Errorf("single string = %v", single.When.Command)
	}

	multiple := file.Rules["multiple"]
	if len(multiple.When.Command) != 2 {
		t.Errorf("array = %v", multiple.When.Command)
	}
}

func TestStringOrListRejectsNonStrings(t *testing.T) {
	data := []byte(`
[rules.bad]
event = "PreToolUse"
matcher = "Bash"
action = "block"
when = { command = [1, 2] }
`)

	_, err := Parse("test.toml", data)
	if err == nil {
		t.Fatal("expected parse error for non-string alternatives")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected ParseError, got %T", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks-rules.toml")
	if err := os.WriteFile(path, []byte("rules = not valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

// The embedded default rule file has every example commented out: it must
// parse to zero rules.
func TestDefaultRules(t *testing.T) {
	file, err := Parse("default", DefaultRules())
	if err != nil {
		t.Fatalf("embedded default rules do not parse: %v", err)
	}
	if len(file.Rules) != 0 {
		t.Errorf("expected 0 active rules in the default file, got %d", len(file.Rules))
	}
}
