package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsRouteToSinks(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut)

	l.Info("camp ready")
	l.Warnf("fuel low: %d", 3)
	l.Error("store offline")
	l.Event("RESPAWN", "world", "trees +10")

	if !strings.Contains(out.String(), "[WILD-INFO] ") || !strings.Contains(out.String(), "camp ready") {
		t.Fatalf("expected info line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "fuel low: 3") {
		t.Fatalf("expected warn line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "[EVENT:RESPAWN] world | trees +10") {
		t.Fatalf("expected event line, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "store offline") {
		t.Fatalf("expected error on error sink, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "store offline") {
		t.Fatalf("error leaked to info sink")
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Info("x")
	l.Warnf("%d", 1)
	l.Errorf("%d", 2)
	l.Event("A", "b", "c")
	if l.Std() == nil {
		t.Fatalf("expected discard std logger")
	}
}
