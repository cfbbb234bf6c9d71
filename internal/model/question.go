package model

// Question is a single catalog question. The catalog is immutable at run
// time; it is seeded once with cmd/seed-questions.
type Question struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Category      string   `json:"category"`
	Position      int      `json:"position"`
}

// QuestionForParticipant is a question without the correct answer, sent to
// participants.
type QuestionForParticipant struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

// ForParticipant strips the correct answer from a question.
func (q Question) ForParticipant() QuestionForParticipant {
	return QuestionForParticipant{
		ID:       q.ID,
		Prompt:   q.Prompt,
		Options:  q.Options,
		Category: q.Category,
	}
}

// ExamPayload is the Redis-cached payload sent to participants (no correct
// answers). Question order here is catalog order; per-participant shuffling
// happens when the paper is served.
type ExamPayload struct {
	Title           string                   `json:"title"`
	DurationMinutes int                      `json:"duration_minutes"`
	Questions       []QuestionForParticipant `json:"questions"`
}
