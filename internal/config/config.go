package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	BotToken     string
	AdminID      int64
	BankFile     string
	DefaultLang  string
	DefaultCount int
}

// FromEnv reads configuration from the environment. Only the bot token is
// required; the caller decides whether its absence is fatal.
func FromEnv() Config {
	cfg := Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		BankFile:     os.Getenv("BANK_FILE"),
		DefaultLang:  os.Getenv("DEFAULT_LANG"),
		DefaultCount: 5,
	}
	if cfg.BankFile == "" {
		cfg.BankFile = "mcq_bank.json"
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = "bn"
	}

	if raw := os.Getenv("ADMIN_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("Ignoring invalid ADMIN_ID %q: %v", raw, err)
		} else {
			cfg.AdminID = id
		}
	}
	if raw := os.Getenv("DEFAULT_QUESTIONS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			log.Printf("Ignoring invalid DEFAULT_QUESTIONS %q", raw)
		} else {
			cfg.DefaultCount = n
		}
	}
	return cfg
}
