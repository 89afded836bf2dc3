package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Language selects the templates used for prompts and explanations.
type Language string

const (
	LangEnglish Language = "en"
	LangBengali Language = "bn"
)

// Lines shorter than this (trimmed, in runes) carry too little content
// to build a question from.
const minLineRunes = 10

// Generate derives multiple-choice questions from raw document text, one per
// qualifying line, in document order. At most count questions are produced,
// but at least one is attempted even if count is lower. An empty result means
// the text had no usable content; callers must treat it as a failure.
//
// Option 0 is always the line's leading term and is the recorded answer.
// Deterministic: no randomness, no external calls.
func Generate(text string, count int, lang Language) []QuestionRecord {
	limit := count
	if limit < 1 {
		limit = 1
	}

	var records []QuestionRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineRunes {
			continue
		}
		records = append(records, buildQuestion(line, lang))
		if len(records) == limit {
			break
		}
	}
	return records
}

func buildQuestion(line string, lang Language) QuestionRecord {
	words := strings.Fields(line)
	subject := words[0]

	options := []string{subject, "Option A", "Option B", "Option C"}
	if len(words) > 1 {
		options[1] = words[1]
	}
	if len(words) > 2 {
		options[2] = words[2]
	}

	var prompt, explanation string
	if lang == LangBengali {
		prompt = fmt.Sprintf("প্রশ্ন: %s সম্পর্কে কোনটি সঠিক?", subject)
		explanation = "সঠিক উত্তর এই তথ্য থেকে পাওয়া যায়। → " + line
	} else {
		prompt = fmt.Sprintf("Question: Which of the following about '%s' is correct?", subject)
		explanation = "The correct answer comes from this line. → " + line
	}

	return QuestionRecord{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: 0,
		Explanation:  explanation,
	}
}
