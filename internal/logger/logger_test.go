package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Init(Options{
		Verbose: true,
		Output:  &buf,
	})

	Debug("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected output to contain 'key=value', got: %s", output)
	}
}

func TestInitOnlyOnce(t *testing.T) {
	defer Reset()

	var buf1, buf2 bytes.Buffer
	Init(Options{Verbose: true, Output: &buf1})
	Init(Options{Verbose: true, Output: &buf2}) // Should be ignored

	Debug("test message")

	if buf1.Len() == 0 {
		t.Error("expected first buffer to have output")
	}
	if buf2.Len() != 0 {
		t.Error("expected second buffer to be empty (Init should only work once)")
	}
}

func TestDebugSuppressedWithoutVerbose(t *testing.T) {
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Output: &buf})

	Debug("hidden")
	Warn("also hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output below error level, got: %s", buf.String())
	}
}

func TestIsVerbose(t *testing.T) {
	defer Reset()

	if IsVerbose() {
		t.Error("expected IsVerbose to be false before Init")
	}

	Init(Options{Verbose: true})

	if !IsVerbose() {
		t.Error("expected IsVerbose to be true after Init with Verbose: true")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	defer Reset()
	Reset()

	// Must not panic before Init.
	Debug("debug")
	Warn("warn")
	Error("error")
}
