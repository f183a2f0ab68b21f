package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapperForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]any{"flow": "list"})

	log.Warn("submission failed", map[string]any{
		"error": errors.New("boom"),
		"cycle": "abc",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["flow"] != "list" {
		t.Fatalf("expected flow field, got %v", ctx)
	}
	if ctx["error"] != "boom" {
		t.Fatalf("expected error field, got %v", ctx["error"])
	}
	if ctx["cycle"] != "abc" {
		t.Fatalf("expected cycle field, got %v", ctx["cycle"])
	}
}

func TestNewHonoursLevel(t *testing.T) {
	l, err := New("warn", "json")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}
}
