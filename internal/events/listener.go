package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"esep-backend/internal/db"
	"github.com/jackc/pgx/v5"
)

// Notifier publishes table changes through pg_notify.
type Notifier struct {
	DB *db.Postgres
}

func (n Notifier) Publish(ctx context.Context, table string) error {
	_, err := n.DB.Pool.Exec(ctx, `SELECT pg_notify($1, '')`, channelPrefix+table)
	if err != nil {
		return fmt.Errorf("notify %s: %w", table, err)
	}
	return nil
}

// Listener holds a dedicated connection LISTENing on every table channel
// and feeds notifications into the bus.
type Listener struct {
	DatabaseURL string
	Bus         *Bus
	Logger      *slog.Logger
}

// Run blocks until ctx is done, reconnecting with a flat backoff when the
// listening connection drops.
func (l Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.Logger.Error("event listener disconnected", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect listener: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	for _, table := range Tables {
		if _, err := conn.Exec(ctx, `LISTEN `+pgx.Identifier{channelPrefix + table}.Sanitize()); err != nil {
			return fmt.Errorf("listen %s: %w", table, err)
		}
	}
	l.Logger.Info("event listener started", "channels", len(Tables))

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.Bus.Dispatch(strings.TrimPrefix(notification.Channel, channelPrefix))
	}
}
