package telegram

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mcqbot/internal/config"
	"mcqbot/internal/extract"
	"mcqbot/internal/service"
	"mcqbot/internal/storage"
)

const startText = "👋 Send me a PDF/Word/TXT and I'll generate MCQs. " +
	"Use /setlang en or /setlang bn and /setnum N to change settings. Admin: use /admin"

const extractFailedText = "Could not extract text from the document. Try a plain TXT or a different PDF."

type Bot struct {
	api        *tgbotapi.BotAPI
	controller *service.Controller
	settings   *service.Settings
	store      *service.Store
	bank       *storage.Bank
	adminID    int64
	dispatcher *dispatcher
}

func NewBot(cfg config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	store := service.NewStore()
	settings := service.NewSettings(service.Language(cfg.DefaultLang), cfg.DefaultCount)

	b := &Bot{
		api:        api,
		controller: service.NewController(store, settings),
		settings:   settings,
		store:      store,
		bank:       storage.NewBank(cfg.BankFile),
		adminID:    cfg.AdminID,
	}
	b.dispatcher = newDispatcher(b.handleUpdate)
	return b, nil
}

func (b *Bot) Start() {
	log.Printf("Authorised on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		from := update.SentFrom()
		if from == nil {
			continue
		}
		b.dispatcher.Dispatch(from.ID, update)
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message == nil:
	case update.Message.Document != nil:
		b.handleDocument(update.Message)
	case update.Message.IsCommand():
		b.handleCommand(update.Message)
	default:
		b.sendMessage(update.Message.Chat.ID, "Please send a document (PDF/DOCX/TXT).")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, startText)
	case "setlang":
		b.handleSetLang(msg)
	case "setnum":
		b.handleSetNum(msg)
	case "admin":
		b.handleAdmin(msg)
	case "backup":
		b.handleBackup(msg)
	case "dumpbank":
		b.handleDumpBank(msg)
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command")
	}
}

func (b *Bot) handleSetLang(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	lang := service.Language(strings.TrimSpace(msg.CommandArguments()))
	if err := b.settings.SetLanguage(lang); err != nil {
		b.sendMessage(msg.Chat.ID, "Usage: /setlang en  OR  /setlang bn")
		return
	}
	if lang == service.LangEnglish {
		b.sendMessage(msg.Chat.ID, "✅ Language set to English")
	} else {
		b.sendMessage(msg.Chat.ID, "✅ ভাষা বাংলায় সেট হয়েছে")
	}
}

func (b *Bot) handleSetNum(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		b.sendMessage(msg.Chat.ID, "⚠️ Usage: /setnum 10")
		return
	}
	if err := b.settings.SetNumQuestions(n); err != nil {
		b.sendMessage(msg.Chat.ID, "⚠️ Usage: /setnum 10")
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Number of questions set to %d", n))
}

func (b *Bot) handleAdmin(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.sendMessage(msg.Chat.ID,
		"🛠 Admin commands:\n"+
			"/backup - merge current sessions into the bank and send the file\n"+
			"/dumpbank - send the stored bank file\n"+
			"/setlang en|bn - set language\n"+
			"/setnum N - set number of MCQs")
}

// handleBackup drains the in-memory sessions into the durable bank, then
// sends the bank file to the admin.
func (b *Bot) handleBackup(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}

	_, changed, err := b.bank.Merge(b.store.RemoveAll())
	if err != nil {
		log.Printf("Error saving bank: %v", err)
		b.sendMessage(msg.Chat.ID, "⚠️ Failed to save the bank file.")
		return
	}
	if changed {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Backup saved to %s. Sending file...", b.bank.Path()))
	} else {
		b.sendMessage(msg.Chat.ID, "No sessions to merge. Sending current file...")
	}
	b.sendBankFile(msg.Chat.ID)
}

func (b *Bot) handleDumpBank(msg *tgbotapi.Message) {
	if !b.requireAdmin(msg) {
		return
	}
	b.sendBankFile(msg.Chat.ID)
}

func (b *Bot) requireAdmin(msg *tgbotapi.Message) bool {
	if msg.From == nil || msg.From.ID != b.adminID {
		b.sendMessage(msg.Chat.ID, "❌ Permission denied.")
		return false
	}
	return true
}

func (b *Bot) sendBankFile(chatID int64) {
	if _, err := os.Stat(b.bank.Path()); err != nil {
		b.sendMessage(chatID, "No bank file present.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(b.bank.Path()))
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending bank file: %v", err)
	}
}

func (b *Bot) handleDocument(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	path, ext, err := b.downloadDocument(msg.Document)
	if err != nil {
		log.Printf("Error downloading document: %v", err)
		b.sendMessage(chatID, extractFailedText)
		return
	}
	defer os.Remove(path)

	text := extract.Text(path, ext)
	if text == "" {
		b.sendMessage(chatID, extractFailedText)
		return
	}

	msgs, err := b.controller.StartQuiz(msg.From.ID, text)
	if errors.Is(err, service.ErrNoContent) {
		b.sendMessage(chatID, "Could not generate questions from this document. Try one with more text.")
		return
	}
	if err != nil {
		log.Printf("Error starting quiz: %v", err)
		return
	}
	b.sendAll(chatID, msgs)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackConfig); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	questionIndex, optionIndex, ok := service.ParseAnswerData(callback.Data)
	if !ok {
		b.sendMessage(chatID, "⚠️ Invalid response.")
		return
	}

	msgs, err := b.controller.HandleAnswer(callback.From.ID, questionIndex, optionIndex)
	switch {
	case errors.Is(err, service.ErrNoSession):
		b.sendMessage(chatID, "⚠️ No active quiz. Send a document to start one.")
		return
	case errors.Is(err, service.ErrStaleAnswer):
		b.sendMessage(chatID, "⚠️ Question index error.")
		return
	case err != nil:
		log.Printf("Error handling answer: %v", err)
		return
	}

	// The graded feedback replaces the question message; the next question
	// or the completion notice arrives as a fresh message.
	edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, msgs[0].Text)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error sending result: %v", err)
	}
	b.sendAll(chatID, msgs[1:])
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending msg: %v", err)
	}
}

func (b *Bot) sendAll(chatID int64, msgs []service.Message) {
	for _, m := range msgs {
		out := tgbotapi.NewMessage(chatID, m.Text)
		if len(m.Buttons) > 0 {
			out.ReplyMarkup = keyboard(m.Buttons)
		}
		if _, err := b.api.Send(out); err != nil {
			log.Printf("Error sending message: %v", err)
		}
	}
}

func keyboard(buttons []service.Button) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, btn := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
