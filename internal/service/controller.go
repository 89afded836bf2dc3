package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoContent means the document produced no qualifying lines.
	ErrNoContent = errors.New("no questions could be generated")
	// ErrNoSession means an answer arrived for a user with no active quiz.
	ErrNoSession = errors.New("no active quiz session")
	// ErrStaleAnswer means the answer references a question other than the
	// one currently awaiting an answer. The session is left untouched.
	ErrStaleAnswer = errors.New("answer does not match the current question")
)

// Message is an outbound chat message. Buttons, when present, are rendered
// by the transport as an inline keyboard whose presses come back carrying
// the button's Data.
type Message struct {
	Text    string
	Buttons []Button
}

type Button struct {
	Label string
	Data  string
}

const answerPrefix = "ans"

// AnswerData builds the correlation token carried by an option button.
func AnswerData(questionIndex, optionIndex int) string {
	return fmt.Sprintf("%s_%d_%d", answerPrefix, questionIndex, optionIndex)
}

// ParseAnswerData is the inverse of AnswerData. ok is false for anything
// that is not an answer token.
func ParseAnswerData(data string) (questionIndex, optionIndex int, ok bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != answerPrefix {
		return 0, 0, false
	}
	questionIndex, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	optionIndex, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return questionIndex, optionIndex, true
}

// Controller walks users through their quiz. It holds no state of its own;
// sessions live in the store, and each call returns the messages to send.
type Controller struct {
	store    *Store
	settings *Settings
}

func NewController(store *Store, settings *Settings) *Controller {
	return &Controller{store: store, settings: settings}
}

// StartQuiz generates questions from extracted document text and opens a
// fresh session for the user, replacing any previous one. Returns
// ErrNoContent (and creates no session) when nothing can be generated.
func (c *Controller) StartQuiz(userID int64, text string) ([]Message, error) {
	lang, count := c.settings.Snapshot()
	questions := Generate(text, count, lang)
	if len(questions) == 0 {
		return nil, ErrNoContent
	}

	c.store.Put(userID, NewSession(questions))

	return []Message{
		{Text: fmt.Sprintf("✅ Generated %d MCQs. Start answering below.", len(questions))},
		questionMessage(questions[0], 0, len(questions)),
	}, nil
}

// HandleAnswer grades a selected option against the session's current
// question and advances. The first returned message is the graded feedback;
// the second is either the next question or the completion notice.
func (c *Controller) HandleAnswer(userID int64, questionIndex, optionIndex int) ([]Message, error) {
	session, ok := c.store.Get(userID)
	if !ok {
		return nil, ErrNoSession
	}
	if questionIndex != session.CurrentIndex || session.Complete() {
		return nil, ErrStaleAnswer
	}

	question := session.Questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, ErrStaleAnswer
	}

	var result string
	if optionIndex == question.CorrectIndex {
		result = "✅ Correct!"
	} else {
		result = fmt.Sprintf("❌ Wrong! Correct: %s", question.Options[question.CorrectIndex])
	}
	feedback := fmt.Sprintf("❓ %s\n\n%s\n📖 %s", question.Prompt, result, question.Explanation)

	advanced, ok := c.store.Advance(userID)
	if !ok {
		return nil, ErrNoSession
	}

	msgs := []Message{{Text: feedback}}
	if advanced.Complete() {
		msgs = append(msgs, Message{Text: "🎉 Done! Send another document to try again."})
	} else {
		next := advanced.Questions[advanced.CurrentIndex]
		msgs = append(msgs, questionMessage(next, advanced.CurrentIndex, len(advanced.Questions)))
	}
	return msgs, nil
}

func questionMessage(question QuestionRecord, index, total int) Message {
	msg := Message{Text: fmt.Sprintf("❓ %d/%d\n\n%s", index+1, total, question.Prompt)}
	for i, option := range question.Options {
		msg.Buttons = append(msg.Buttons, Button{
			Label: option,
			Data:  AnswerData(index, i),
		})
	}
	return msg
}
