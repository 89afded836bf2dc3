package main

import (
	"log"

	"github.com/joho/godotenv"

	"mcqbot/internal/config"
	"mcqbot/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg := config.FromEnv()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN environment variable is required")
	}

	bot, err := telegram.NewBot(cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("🤖 Bot is starting...")
	bot.Start()
}
