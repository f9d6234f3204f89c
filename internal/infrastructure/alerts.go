package infrastructure

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Alerter pushes operational events (new contact replies, broadcasts) to an
// admin Telegram chat. Optional: a nil Alerter is safe to call everywhere.
type Alerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewAlerter returns nil when the token is empty so callers can wire it
// unconditionally.
func NewAlerter(token string, chatID int64) *Alerter {
	if token == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("Telegram alerts disabled: %v", err)
		return nil
	}
	return &Alerter{bot: bot, chatID: chatID}
}

func (a *Alerter) Notify(format string, args ...interface{}) {
	if a == nil {
		return
	}
	msg := tgbotapi.NewMessage(a.chatID, fmt.Sprintf(format, args...))
	if _, err := a.bot.Send(msg); err != nil {
		log.Printf("Telegram alert failed: %v", err)
	}
}
