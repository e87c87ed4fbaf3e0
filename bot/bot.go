package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/homeworkbot/config"
	"github.com/homeworkbot/storage"
	"github.com/homeworkbot/utils"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func NewBot(config *config.Config, logger *zap.SugaredLogger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(config.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("parsing telegram bot token err: %w", err)
	}

	botAPI.Debug = config.BotEnv

	if botAPI.Debug {
		logger.Infof("authorized on account @%v in debug mode! (%v)", botAPI.Self.UserName, botAPI.Self.FirstName)
	} else {
		logger.Infof("authorized on account @%v! (%v)", botAPI.Self.UserName, botAPI.Self.FirstName)
	}

	return botAPI, nil
}

type Notifier struct {
	api     Sender
	chatID  string
	journal storage.Journal
	logger  *zap.SugaredLogger
}

func NewNotifier(api Sender, chatID string, journal storage.Journal, logger *zap.SugaredLogger) *Notifier {
	if journal == nil {
		journal = storage.Nop{}
	}
	return &Notifier{
		api:     api,
		chatID:  chatID,
		journal: journal,
		logger:  logger.Named("notifier"),
	}
}

// SendMessage makes exactly one delivery attempt. Failures are logged and
// reported as false; they never reach the caller as errors.
func (n *Notifier) SendMessage(ctx context.Context, text string) bool {
	n.logger.Infof("sending message to chat (%v)", n.chatID)

	message, err := n.api.Send(utils.ChatMessage(n.chatID, text))
	if err != nil {
		n.logger.Errorf("message to telegram not sent: %v", err)
		return false
	}
	n.logger.Debugf("message to telegram sent: %v", text)

	record := utils.BotMessageToModel(n.chatID, message)
	if record.Text == "" {
		record.Text = text
	}
	if err := n.journal.Save(ctx, record); err != nil {
		n.logger.Warnf("saving sent message (%v): %v", message.MessageID, err)
	}
	return true
}
