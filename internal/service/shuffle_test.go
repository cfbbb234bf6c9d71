package service

import (
	"reflect"
	"sort"
	"testing"

	"github.com/vigilo-exam/vigilo-backend/internal/model"
)

func catalogOf(ids ...string) []model.Question {
	questions := make([]model.Question, len(ids))
	for i, id := range ids {
		questions[i] = model.Question{ID: id, Prompt: "prompt " + id, Position: i}
	}
	return questions
}

func idsOf(questions []model.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestShuffleQuestionsDeterministic(t *testing.T) {
	catalog := catalogOf("a", "b", "c", "d", "e", "f", "g", "h")

	first := ShuffleQuestions(catalog, "participant-42")
	second := ShuffleQuestions(catalog, "participant-42")

	if !reflect.DeepEqual(idsOf(first), idsOf(second)) {
		t.Fatalf("same participant got different orders: %v vs %v", idsOf(first), idsOf(second))
	}
}

func TestShuffleQuestionsKnownOrder(t *testing.T) {
	// Regression pin for the generator constants: seed("p1") = 161, and the
	// recurrence walks [a b c] to [c a b]. If this fails, stored answer
	// orderings from earlier deployments no longer line up.
	got := idsOf(ShuffleQuestions(catalogOf("a", "b", "c"), "p1"))
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order for p1 = %v, want %v", got, want)
	}

	got = idsOf(ShuffleQuestions(catalogOf("a", "b", "c"), "p2"))
	want = []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order for p2 = %v, want %v", got, want)
	}
}

func TestShuffleQuestionsIsPermutation(t *testing.T) {
	catalog := catalogOf("q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10")

	for _, pid := range []string{"", "p1", "someone@example.com", "参加者"} {
		shuffled := ShuffleQuestions(catalog, pid)
		if len(shuffled) != len(catalog) {
			t.Fatalf("participant %q: length %d, want %d", pid, len(shuffled), len(catalog))
		}

		gotIDs := idsOf(shuffled)
		wantIDs := idsOf(catalog)
		sort.Strings(gotIDs)
		sort.Strings(wantIDs)
		if !reflect.DeepEqual(gotIDs, wantIDs) {
			t.Fatalf("participant %q: not a permutation: %v", pid, idsOf(shuffled))
		}
	}
}

func TestShuffleQuestionsEmptyInput(t *testing.T) {
	if got := ShuffleQuestions(nil, "p1"); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestShuffleQuestionsDoesNotMutateInput(t *testing.T) {
	catalog := catalogOf("a", "b", "c", "d")
	before := idsOf(catalog)

	ShuffleQuestions(catalog, "p1")

	if !reflect.DeepEqual(idsOf(catalog), before) {
		t.Fatalf("input mutated: %v", idsOf(catalog))
	}
}
