package service

// QuestionRecord is a single multiple-choice question. The JSON tags match
// the bank file format, so an existing mcq_bank.json loads unchanged.
type QuestionRecord struct {
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"answer"`
	Explanation  string   `json:"explanation"`
}

// Session is one user's in-progress question set. CurrentIndex equal to
// len(Questions) means the session is complete.
type Session struct {
	Questions    []QuestionRecord
	CurrentIndex int
}

func NewSession(questions []QuestionRecord) *Session {
	return &Session{Questions: questions}
}

func (s *Session) Complete() bool {
	return s.CurrentIndex >= len(s.Questions)
}
