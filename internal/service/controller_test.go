package service

import (
	"errors"
	"strings"
	"testing"
)

func newTestController() (*Controller, *Store) {
	store := NewStore()
	return NewController(store, NewSettings(LangEnglish, 5)), store
}

func capitalSession() *Session {
	return NewSession([]QuestionRecord{{
		Prompt:       "Which city is the capital of France?",
		Options:      []string{"Paris", "London", "Rome", "Berlin"},
		CorrectIndex: 0,
		Explanation:  "Paris has been the capital since 987.",
	}})
}

func TestStartQuiz(t *testing.T) {
	controller, store := newTestController()

	msgs, err := controller.StartQuiz(1, sampleText)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Expected notice plus first question, got %d messages", len(msgs))
	}
	if !strings.Contains(msgs[0].Text, "Generated 3 MCQs") {
		t.Errorf("Unexpected notice %q", msgs[0].Text)
	}
	if len(msgs[1].Buttons) != 4 {
		t.Fatalf("Expected 4 option buttons, got %d", len(msgs[1].Buttons))
	}
	if msgs[1].Buttons[0].Data != "ans_0_0" {
		t.Errorf("Expected first token ans_0_0, got %q", msgs[1].Buttons[0].Data)
	}

	session, ok := store.Get(1)
	if !ok || session.CurrentIndex != 0 {
		t.Error("Expected a fresh session at index 0")
	}
}

func TestStartQuizNoContent(t *testing.T) {
	controller, store := newTestController()

	if _, err := controller.StartQuiz(1, "tiny\n"); !errors.Is(err, ErrNoContent) {
		t.Fatalf("Expected ErrNoContent, got %v", err)
	}
	if _, ok := store.Get(1); ok {
		t.Error("Failed generation must not create a session")
	}
}

func TestStartQuizReplacesSession(t *testing.T) {
	controller, store := newTestController()

	if _, err := controller.StartQuiz(1, sampleText); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	store.Advance(1)

	if _, err := controller.StartQuiz(1, sampleText); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	session, _ := store.Get(1)
	if session.CurrentIndex != 0 {
		t.Errorf("Expected new session at index 0, got %d", session.CurrentIndex)
	}
}

func TestHandleAnswerGrading(t *testing.T) {
	testCases := []struct {
		name        string
		optionIndex int
		want        string
	}{
		{"correct option", 0, "✅ Correct!"},
		{"wrong option names the answer", 1, "❌ Wrong! Correct: Paris"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			controller, store := newTestController()
			store.Put(1, capitalSession())

			msgs, err := controller.HandleAnswer(1, 0, tc.optionIndex)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(msgs) != 2 {
				t.Fatalf("Expected feedback plus completion, got %d messages", len(msgs))
			}
			if !strings.Contains(msgs[0].Text, tc.want) {
				t.Errorf("Feedback %q missing %q", msgs[0].Text, tc.want)
			}
			if !strings.Contains(msgs[0].Text, "📖 Paris has been the capital since 987.") {
				t.Errorf("Feedback %q missing explanation", msgs[0].Text)
			}
			if !strings.Contains(msgs[1].Text, "Done") {
				t.Errorf("Expected completion notice, got %q", msgs[1].Text)
			}

			session, _ := store.Get(1)
			if !session.Complete() {
				t.Error("Single-question session should be complete after grading")
			}
		})
	}
}

func TestHandleAnswerAdvancesToNextQuestion(t *testing.T) {
	controller, store := newTestController()
	store.Put(1, NewSession(twoQuestions()))

	msgs, err := controller.HandleAnswer(1, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("Expected feedback plus next question, got %d messages", len(msgs))
	}
	if len(msgs[1].Buttons) == 0 || msgs[1].Buttons[0].Data != "ans_1_0" {
		t.Errorf("Expected next question tokens for index 1, got %+v", msgs[1].Buttons)
	}

	session, _ := store.Get(1)
	if session.CurrentIndex != 1 {
		t.Errorf("Expected CurrentIndex 1, got %d", session.CurrentIndex)
	}
}

func TestHandleAnswerStale(t *testing.T) {
	controller, store := newTestController()
	store.Put(1, NewSession(twoQuestions()))
	store.Advance(1)

	// Re-answering question 0 must be rejected without moving the session.
	if _, err := controller.HandleAnswer(1, 0, 0); !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("Expected ErrStaleAnswer, got %v", err)
	}

	session, _ := store.Get(1)
	if session.CurrentIndex != 1 {
		t.Errorf("Stale answer must not move the session, got index %d", session.CurrentIndex)
	}
}

func TestHandleAnswerInvalidReferences(t *testing.T) {
	controller, store := newTestController()
	store.Put(1, capitalSession())

	testCases := []struct {
		name          string
		userID        int64
		questionIndex int
		optionIndex   int
		want          error
	}{
		{"no session", 2, 0, 0, ErrNoSession},
		{"question index out of range", 1, 5, 0, ErrStaleAnswer},
		{"negative question index", 1, -1, 0, ErrStaleAnswer},
		{"option index out of range", 1, 0, 4, ErrStaleAnswer},
		{"negative option index", 1, 0, -1, ErrStaleAnswer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := controller.HandleAnswer(tc.userID, tc.questionIndex, tc.optionIndex); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}

	session, _ := store.Get(1)
	if session.CurrentIndex != 0 {
		t.Error("Rejected answers must not move the session")
	}
}

func TestAnswerDataRoundTrip(t *testing.T) {
	questionIndex, optionIndex, ok := ParseAnswerData(AnswerData(3, 2))
	if !ok || questionIndex != 3 || optionIndex != 2 {
		t.Errorf("Round trip failed: got (%d, %d, %v)", questionIndex, optionIndex, ok)
	}

	for _, bad := range []string{"", "ans", "ans_1", "ans_x_1", "ans_1_y", "quiz_1_2", "ans_1_2_3"} {
		if _, _, ok := ParseAnswerData(bad); ok {
			t.Errorf("ParseAnswerData(%q) should fail", bad)
		}
	}
}
