package utils

import (
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/homeworkbot/models"
)

// MaxMessageRunes is Telegram's limit for the text of one message.
const MaxMessageRunes = 4096

func Truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

// ChatMessage addresses text to a numeric chat id or, failing that, to a
// public @channel username.
func ChatMessage(chatID string, text string) tgbotapi.MessageConfig {
	text = Truncate(text, MaxMessageRunes)
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(chatID, text)
}

func BotMessageToModel(chatID string, message tgbotapi.Message) *models.Notification {
	ts := time.Now()
	if message.Date != 0 {
		ts = message.Time()
	}
	return &models.Notification{
		ChatID:    chatID,
		MessageID: message.MessageID,
		Text:      message.Text,
		Timestamp: ts,
	}
}
