package config

import (
	"testing"
	"time"
)

func testWindow(start time.Time) ExamWindow {
	return ExamWindow{
		StartsAt:           start,
		Duration:           15 * time.Minute,
		EntryWindow:        30 * time.Minute,
		ViolationThreshold: 5,
		Active:             true,
	}
}

func TestIsAvailableAt(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	w := testWindow(start)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"one second before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"mid window", start.Add(14 * time.Minute), true},
		{"last instant inside", start.Add(30*time.Minute - time.Nanosecond), true},
		{"exactly at close", start.Add(30 * time.Minute), false},
		{"after close", start.Add(45 * time.Minute), false},
	}

	for _, tc := range cases {
		if got := w.IsAvailableAt(tc.at); got != tc.want {
			t.Errorf("%s: IsAvailableAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsAvailableAtInactive(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	w := testWindow(start)
	w.Active = false

	if w.IsAvailableAt(start.Add(time.Minute)) {
		t.Fatal("inactive exam must never be available")
	}
}

func TestEndsAt(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	w := testWindow(start)

	want := start.Add(30 * time.Minute)
	if got := w.EndsAt(); !got.Equal(want) {
		t.Fatalf("EndsAt = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	start := time.Now()

	if err := testWindow(start).Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}

	w := testWindow(start)
	w.Duration = 0
	if err := w.Validate(); err == nil {
		t.Error("zero duration must be rejected")
	}

	w = testWindow(start)
	w.ViolationThreshold = -1
	if err := w.Validate(); err == nil {
		t.Error("negative threshold must be rejected")
	}

	w = testWindow(start)
	w.EntryWindow = 10 * time.Minute
	if err := w.Validate(); err == nil {
		t.Error("entry window shorter than duration must be rejected")
	}

	// Threshold zero is a legal, maximally strict configuration.
	w = testWindow(start)
	w.ViolationThreshold = 0
	if err := w.Validate(); err != nil {
		t.Errorf("zero threshold rejected: %v", err)
	}
}
