package service

import (
	"testing"

	"github.com/vigilo-exam/vigilo-backend/internal/model"
)

func TestScore(t *testing.T) {
	answers := []model.Answer{
		{QuestionID: "q1", IsCorrect: true},
		{QuestionID: "q2", IsCorrect: false},
		{QuestionID: "q3", IsCorrect: true},
	}

	score, percentage := Score(answers)
	if score != 2 {
		t.Fatalf("score = %d, want 2", score)
	}
	if percentage != 67 {
		t.Fatalf("percentage = %d, want 67 (2/3 rounded)", percentage)
	}
}

func TestScoreEmpty(t *testing.T) {
	score, percentage := Score(nil)
	if score != 0 || percentage != 0 {
		t.Fatalf("empty answers: got score=%d percentage=%d, want 0/0", score, percentage)
	}
}

func TestScoreAllCorrect(t *testing.T) {
	answers := []model.Answer{
		{IsCorrect: true},
		{IsCorrect: true},
	}
	score, percentage := Score(answers)
	if score != 2 || percentage != 100 {
		t.Fatalf("got score=%d percentage=%d, want 2/100", score, percentage)
	}
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		percentage int
		want       string
	}{
		{100, "A+"},
		{90, "A+"},
		{89, "A"},
		{80, "A"},
		{79, "B+"},
		{70, "B+"},
		{69, "B"},
		{60, "B"},
		{59, "C"},
		{50, "C"},
		{49, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := GradeFor(tc.percentage); got.Letter != tc.want {
			t.Errorf("GradeFor(%d) = %s, want %s", tc.percentage, got.Letter, tc.want)
		}
	}
}

func TestGradeLabels(t *testing.T) {
	if g := GradeFor(95); g.Label == "" {
		t.Fatal("grades must carry a descriptive label")
	}
	if g := GradeFor(10); g.Letter != "F" || g.Label != "Fail" {
		t.Fatalf("GradeFor(10) = %+v, want F/Fail", g)
	}
}
