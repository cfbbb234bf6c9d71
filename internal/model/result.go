package model

import (
	"time"

	"github.com/google/uuid"
)

// ResultStatus tags how an attempt ended.
type ResultStatus string

const (
	ResultStatusCompleted  ResultStatus = "completed"
	ResultStatusInProgress ResultStatus = "in-progress"
	ResultStatusAbandoned  ResultStatus = "abandoned"
)

// Answer is one answered question within a result. IsCorrect is assigned
// server-side from the answer key, never trusted from the client.
type Answer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// Result is an append-only record of a finished (or abandoned) attempt.
// A participant may accumulate multiple records across re-attempts.
type Result struct {
	ID               uuid.UUID    `json:"id"`
	ParticipantID    string       `json:"participant_id"`
	ParticipantName  string       `json:"participant_name"`
	Score            int          `json:"score"`
	TotalQuestions   int          `json:"total_questions"`
	Percentage       int          `json:"percentage"`
	TimeSpentSeconds int          `json:"time_spent_seconds"`
	Answers          []Answer     `json:"answers"`
	CompletedAt      time.Time    `json:"completed_at"`
	Status           ResultStatus `json:"status"`
}

// SubmitResultRequest is the payload for submitting a finished attempt.
// completedAt is intentionally absent: the store assigns it.
type SubmitResultRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,dive"`
	// TimeSpentSeconds is self-reported by the client.
	TimeSpentSeconds int    `json:"time_spent_seconds" binding:"min=0"`
	Status           string `json:"status" binding:"omitempty,oneof=completed in-progress abandoned"`
}

// SubmittedAnswer is a raw client answer before server-side marking.
type SubmittedAnswer struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedAnswer int    `json:"selectedAnswer" binding:"min=0"`
}
