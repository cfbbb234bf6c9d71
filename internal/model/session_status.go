package model

import "time"

// SessionStatus is the one-per-participant record tracking submission and
// violation state for the current exam window. It is created lazily on first
// access and only ever updated with upsert semantics.
type SessionStatus struct {
	ParticipantID   string     `json:"participant_id"`
	HasSubmitted    bool       `json:"has_submitted"`
	SubmissionDate  *time.Time `json:"submission_date,omitempty"`
	TabSwitchCount  int        `json:"tab_switch_count"`
	IsTestCancelled bool       `json:"is_test_cancelled"`
	LastActivity    time.Time  `json:"last_activity"`
}

// StatusUpdate carries the fields of a partial session status update.
// Nil fields are left untouched by the upsert; last_activity is always
// refreshed.
type StatusUpdate struct {
	HasSubmitted    *bool
	SubmissionDate  *time.Time
	IsTestCancelled *bool
}

// ViolationReport is the payload for reporting a loss-of-focus event.
type ViolationReport struct {
	// Kind distinguishes the raw event the presentation layer observed.
	Kind string `json:"kind" binding:"omitempty,oneof=tab_switch window_blur fullscreen_exit"`
	// Detail is opaque client context, stored with the audit event.
	Detail string `json:"detail" binding:"omitempty,max=2000"`
}
