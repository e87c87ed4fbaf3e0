package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/homeworkbot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Journal records delivered notifications. It is an audit trail only and is
// never read back to decide what to send.
type Journal interface {
	Save(ctx context.Context, n *models.Notification) error
}

const createNotifications = `CREATE TABLE IF NOT EXISTS sent_notifications (
	id            BIGSERIAL PRIMARY KEY,
	chat_id       TEXT        NOT NULL,
	message_id    INTEGER     NOT NULL,
	text          TEXT        NOT NULL,
	time_stamp    TIMESTAMPTZ NOT NULL,
	db_time_stamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
)`

type BotStorage struct {
	pool   *pgxpool.Pool
	logger *zap.SugaredLogger
}

func NewBotStorage(pool *pgxpool.Pool, logger *zap.SugaredLogger) *BotStorage {
	return &BotStorage{pool: pool, logger: logger.Named("storage")}
}

func (b *BotStorage) Migrate(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, createNotifications); err != nil {
		return fmt.Errorf("storage create sent_notifications: %w", err)
	}
	return nil
}

func (b *BotStorage) Save(ctx context.Context, n *models.Notification) error {
	saveCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	exec, err := b.pool.Exec(
		saveCtx,
		`INSERT INTO sent_notifications (chat_id, message_id, text, time_stamp) VALUES ($1, $2, $3, $4)`,
		n.ChatID,
		n.MessageID,
		n.Text,
		n.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("storage insert notification: %w", err)
	}

	if exec.RowsAffected() != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", exec.RowsAffected())
	}

	deadline, _ := saveCtx.Deadline()
	b.logger.Debugf("saved message %d, time left: %v", n.MessageID, time.Until(deadline))
	return nil
}

// Nop is the journal used when no database is configured.
type Nop struct{}

func (Nop) Save(context.Context, *models.Notification) error { return nil }
