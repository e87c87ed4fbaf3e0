package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/homeworkbot/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	return tgbotapi.Message{MessageID: len(f.sent), Text: msg.Text}, nil
}

type fakeJournal struct {
	saved []*models.Notification
	err   error
}

func (f *fakeJournal) Save(_ context.Context, n *models.Notification) error {
	f.saved = append(f.saved, n)
	return f.err
}

func TestNotifier_SendMessage(t *testing.T) {
	tests := []struct {
		name       string
		sendErr    error
		journalErr error
		want       bool
		wantSaved  int
	}{
		{name: "delivered", want: true, wantSaved: 1},
		{name: "telegram error is swallowed", sendErr: errors.New("Forbidden: bot was blocked by the user"), want: false},
		{name: "journal error does not fail delivery", journalErr: errors.New("db down"), want: true, wantSaved: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.sendErr}
			journal := &fakeJournal{err: tt.journalErr}
			n := NewNotifier(sender, "12345", journal, zap.NewNop().Sugar())

			got := n.SendMessage(context.Background(), "status changed")

			require.Equal(t, tt.want, got)
			require.Len(t, sender.sent, 1)
			require.Equal(t, int64(12345), sender.sent[0].ChatID)
			require.Equal(t, "status changed", sender.sent[0].Text)
			require.Len(t, journal.saved, tt.wantSaved)
			if tt.wantSaved > 0 {
				require.Equal(t, "12345", journal.saved[0].ChatID)
				require.Equal(t, "status changed", journal.saved[0].Text)
			}
		})
	}
}

func TestNotifier_NilJournal(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "@channel", nil, zap.NewNop().Sugar())

	require.True(t, n.SendMessage(context.Background(), "hi"))
	require.Equal(t, "@channel", sender.sent[0].ChannelUsername)
}
