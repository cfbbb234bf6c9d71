package service

import (
	"github.com/vigilo-exam/vigilo-backend/internal/model"
)

// lcg is the linear congruential generator behind the deterministic shuffle.
// The constants are load-bearing: stored answer orderings from earlier
// deployments were produced with exactly this recurrence, so they must not
// change.
type lcg struct {
	state int64
}

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// next returns the next draw in [0, 1).
func (g *lcg) next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// seedFor derives the shuffle seed from a participant id: the sum of its
// character codes. Stable across process restarts by construction.
func seedFor(participantID string) int64 {
	var seed int64
	for _, r := range participantID {
		seed += int64(r)
	}
	return seed
}

// ShuffleQuestions returns a participant-specific permutation of questions.
// The same participant id always yields the same order; different ids
// usually, but not provably, diverge. The input slice is not modified.
func ShuffleQuestions(questions []model.Question, participantID string) []model.Question {
	shuffled := make([]model.Question, len(questions))
	copy(shuffled, questions)

	g := &lcg{state: seedFor(participantID)}

	// Fisher–Yates, seeded.
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
