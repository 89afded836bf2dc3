package storage

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"mcqbot/internal/service"
)

// Bank is the durable question bank: a JSON document mapping stringified
// user IDs to their finalized question sets. Reads and writes cover the
// whole file; there are no partial updates.
type Bank struct {
	path string
}

func NewBank(path string) *Bank {
	return &Bank{path: path}
}

func (b *Bank) Path() string {
	return b.path
}

// Load reads the bank file. A missing or corrupt file is treated as an
// empty bank, not an error.
func (b *Bank) Load() map[string][]service.QuestionRecord {
	bank := make(map[string][]service.QuestionRecord)

	data, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading bank file %s: %v", b.path, err)
		}
		return bank
	}
	if err := json.Unmarshal(data, &bank); err != nil {
		log.Printf("Bank file %s is corrupt, starting empty: %v", b.path, err)
		return make(map[string][]service.QuestionRecord)
	}
	return bank
}

// Save rewrites the whole bank file.
func (b *Bank) Save(bank map[string][]service.QuestionRecord) error {
	data, err := json.MarshalIndent(bank, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o644)
}

// Merge folds the drained sessions into the bank, overwriting any prior
// entry per user. Sessions with no questions are skipped. The file is
// rewritten only when something changed.
func (b *Bank) Merge(sessions map[int64][]service.QuestionRecord) (map[string][]service.QuestionRecord, bool, error) {
	bank := b.Load()

	changed := false
	for userID, questions := range sessions {
		if len(questions) == 0 {
			continue
		}
		bank[strconv.FormatInt(userID, 10)] = questions
		changed = true
	}

	if changed {
		if err := b.Save(bank); err != nil {
			return bank, changed, err
		}
	}
	return bank, changed, nil
}
