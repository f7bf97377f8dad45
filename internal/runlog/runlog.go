// Package runlog provides the append-line audit trail of a run. Every
// loop event and model exchange lands here as one timestamped line, in
// order, so a run can be reconstructed after the fact.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink receives log lines. Implementations must keep append order.
type Sink interface {
	Append(line string) error
}

// Nop discards every line.
type Nop struct{}

func (Nop) Append(string) error { return nil }

// FileSink writes timestamped lines to one log file per run, named
// <starttime>.agentrun.log under the configured directory.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	path string
	now  func() time.Time
}

// NewFileSink creates the log directory if needed and opens a fresh
// run log file.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("20060102-150405")+".agentrun.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return &FileSink{file: file, path: path, now: time.Now}, nil
}

// Append implements Sink.
func (s *FileSink) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.file, "[%s] %s\n", s.now().Format("2006-01-02 15:04:05.000000"), line)
	return err
}

// Path returns the log file location.
func (s *FileSink) Path() string {
	return s.path
}

// Close flushes and closes the log file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
