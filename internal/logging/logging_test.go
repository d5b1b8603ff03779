package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWarnAlwaysOn(t *testing.T) {
	l := New(Options{})
	if l.Warn == nil {
		t.Fatal("Warn logger not constructed")
	}
	if l.Progress != nil {
		t.Error("Progress logger active without verbose")
	}

	l = New(Options{Verbose: true})
	if l.Progress == nil {
		t.Error("Progress logger missing with verbose")
	}
}

func TestNewTeesIntoLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agsync.log")
	l := New(Options{Verbose: true, LogFile: path})

	l.Warn.Printf("warning: deny rule %q degraded to ask", "rm -rf")
	l.Progress.Print("create-target: reviewer")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "degraded to ask") {
		t.Errorf("warn line missing from log file:\n%s", content)
	}
	if !strings.Contains(content, "create-target: reviewer") {
		t.Errorf("progress line missing from log file:\n%s", content)
	}
}
