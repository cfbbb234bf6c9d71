package config

import (
	"testing"
	"time"
)

func TestLoadExamWindowFromEnv(t *testing.T) {
	t.Setenv("EXAM_STARTS_AT", "2026-03-09T09:00:00Z")
	t.Setenv("EXAM_DURATION_MINUTES", "20")
	t.Setenv("EXAM_ENTRY_WINDOW_MINUTES", "40")
	t.Setenv("EXAM_VIOLATION_THRESHOLD", "3")
	t.Setenv("EXAM_ACTIVE", "false")

	cfg := Load()

	wantStart := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	if !cfg.Exam.StartsAt.Equal(wantStart) {
		t.Errorf("StartsAt = %v, want %v", cfg.Exam.StartsAt, wantStart)
	}
	if cfg.Exam.Duration != 20*time.Minute {
		t.Errorf("Duration = %v, want 20m", cfg.Exam.Duration)
	}
	if cfg.Exam.EntryWindow != 40*time.Minute {
		t.Errorf("EntryWindow = %v, want 40m", cfg.Exam.EntryWindow)
	}
	if cfg.Exam.ViolationThreshold != 3 {
		t.Errorf("ViolationThreshold = %d, want 3", cfg.Exam.ViolationThreshold)
	}
	if cfg.Exam.Active {
		t.Error("Active = true, want false")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Exam.Duration != 15*time.Minute {
		t.Errorf("default Duration = %v, want 15m", cfg.Exam.Duration)
	}
	if cfg.Exam.EntryWindow != 30*time.Minute {
		t.Errorf("default EntryWindow = %v, want 30m", cfg.Exam.EntryWindow)
	}
	if cfg.Exam.ViolationThreshold != 5 {
		t.Errorf("default ViolationThreshold = %d, want 5", cfg.Exam.ViolationThreshold)
	}
	if !cfg.Exam.Active {
		t.Error("default Active = false, want true")
	}
	if err := cfg.Exam.Validate(); err != nil {
		t.Errorf("default window invalid: %v", err)
	}
}

func TestLoadBadEnvFallsBack(t *testing.T) {
	t.Setenv("EXAM_STARTS_AT", "not-a-timestamp")
	t.Setenv("EXAM_DURATION_MINUTES", "soon")

	cfg := Load()

	if cfg.Exam.Duration != 15*time.Minute {
		t.Errorf("bad duration should fall back to 15m, got %v", cfg.Exam.Duration)
	}
	if cfg.Exam.StartsAt.IsZero() {
		t.Error("bad start should fall back to a non-zero default")
	}
}

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Errorf("empty input should return nil, got %v", got)
	}

	got := parseOrigins("https://a.example, https://b.example ,")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("parseOrigins = %v", got)
	}
}
