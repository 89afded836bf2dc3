package service

import (
	"errors"
	"sync"
)

const (
	defaultLanguage     = LangBengali
	defaultNumQuestions = 5
)

var (
	ErrUnknownLanguage = errors.New("language must be en or bn")
	ErrInvalidCount    = errors.New("question count must be positive")
)

// Settings is the process-wide generation configuration. There is no
// per-user scoping: the latest write wins for everyone, and a generation
// that started before an update may still use the previous values.
type Settings struct {
	mu    sync.RWMutex
	lang  Language
	count int
}

func NewSettings(lang Language, count int) *Settings {
	if lang != LangEnglish && lang != LangBengali {
		lang = defaultLanguage
	}
	if count < 1 {
		count = defaultNumQuestions
	}
	return &Settings{lang: lang, count: count}
}

func (s *Settings) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

func (s *Settings) SetLanguage(lang Language) error {
	if lang != LangEnglish && lang != LangBengali {
		return ErrUnknownLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	return nil
}

func (s *Settings) NumQuestions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *Settings) SetNumQuestions(count int) error {
	if count < 1 {
		return ErrInvalidCount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count = count
	return nil
}

// Snapshot returns both values under one lock so a generation call sees a
// consistent pair.
func (s *Settings) Snapshot() (Language, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang, s.count
}
