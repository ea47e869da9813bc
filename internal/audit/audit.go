// Package audit provides audit logging for hookgate rule decisions.
//
// Each hook invocation appends one JSON line describing the event, the
// matched rule (if any), and the outcome. The audit log is best-effort:
// failures are logged at debug level and never affect the hook outcome.
//
// Concurrent hookgate processes append to the same file relying on
// O_APPEND write atomicity for small writes; no cross-process locking is
// performed. This is a known limitation, not a guarantee.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hookgate/hookgate/internal/constants"
	"github.com/hookgate/hookgate/internal/logger"
	"github.com/klauspost/compress/zstd"
)

// Version is the audit entry schema version.
const Version = 1

// TimestampFormat is the format used for audit log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// rotateSize is the live-file size at which Init compresses and truncates.
const rotateSize = 5 << 20

// Entry represents a single audit log entry (v1 format).
type Entry struct {
	Version    int     `json:"version"`
	Timestamp  string  `json:"timestamp"`
	SessionID  string  `json:"session_id"`
	ToolUseID  string  `json:"tool_use_id"`
	Event      string  `json:"event"`
	ToolName   string  `json:"tool_name"`
	Command    string  `json:"command,omitempty"`
	FilePath   string  `json:"file_path,omitempty"`
	Rule       string  `json:"rule,omitempty"`
	Action     string  `json:"action,omitempty"`
	ExitCode   int     `json:"exit_code"`
	DurationMs float64 `json:"duration_ms"`
	Cwd        string  `json:"cwd,omitempty"`
}

var (
	auditFile *os.File
	mu        sync.Mutex
	enabled   bool
)

// DefaultLogPath returns the default audit log path
// (~/.local/share/hookgate/audit.log).
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.AuditLogSubdir, constants.AuditLogFileName), nil
}

// Init initializes the audit log. If path is empty, uses the default path.
// Pass disable=true to turn audit logging off entirely.
func Init(path string, disable bool) error {
	mu.Lock()
	defer mu.Unlock()

	if disable {
		enabled = false
		return nil
	}

	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			logger.Debug("failed to get default audit log path", "error", err)
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		logger.Debug("failed to create audit log directory", "error", err)
		return err
	}

	if err := rotateIfLarge(path); err != nil {
		logger.Debug("audit log rotation failed", "error", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FileMode)
	if err != nil {
		logger.Debug("failed to open audit log file", "error", err)
		return err
	}

	auditFile = f
	enabled = true
	logger.Debug("audit logging initialized", "path", path)
	return nil
}

// rotateIfLarge compresses the live audit log to a timestamped .zst file
// beside it and truncates the original once it exceeds rotateSize.
func rotateIfLarge(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() < rotateSize {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	archive := fmt.Sprintf("%s-%s.jsonl.zst",
		path[:len(path)-len(filepath.Ext(path))],
		time.Now().UTC().Format("20060102T150405"))
	dst, err := os.OpenFile(archive, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}
	defer dst.Close()

	zw, err := zstd.NewWriter(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, src); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	logger.Debug("rotated audit log", "archive", archive, "size", info.Size())
	return os.Truncate(path, 0)
}

// Close closes the audit log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if auditFile != nil {
		err := auditFile.Close()
		auditFile = nil
		enabled = false
		return err
	}
	return nil
}

// Log writes an entry to the audit log.
// If audit logging is not initialized or disabled, this is a no-op.
func Log(entry Entry) error {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || auditFile == nil {
		return nil
	}

	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Debug("failed to marshal audit entry", "error", err)
		return err
	}

	if _, err := auditFile.Write(append(data, '\n')); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
		return err
	}

	return nil
}

// IsEnabled returns whether audit logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Reset resets the audit state. Used for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if auditFile != nil {
		auditFile.Close()
	}
	auditFile = nil
	enabled = false
}
