package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Backend publishes write notifications and, while Run is active, feeds
// notifications from its source into a Listener.
type Backend interface {
	Publish(ctx context.Context, kind sports.Kind) error
	Run(ctx context.Context) error
}

// Memory dispatches straight into the listener. It only sees writes made by
// this process.
type Memory struct {
	listener *Listener
}

func NewMemory(l *Listener) *Memory {
	return &Memory{listener: l}
}

func (m *Memory) Publish(_ context.Context, kind sports.Kind) error {
	m.listener.Dispatch(kind)
	return nil
}

func (m *Memory) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Redis publishes kinds on a pub/sub channel and dispatches whatever the
// channel delivers, so every instance sharing the channel sees every write.
type Redis struct {
	client   *redis.Client
	channel  string
	listener *Listener
	logger   *slog.Logger
}

func NewRedis(client *redis.Client, channel string, l *Listener, logger *slog.Logger) *Redis {
	return &Redis{client: client, channel: channel, listener: l, logger: logger}
}

func (r *Redis) Publish(ctx context.Context, kind sports.Kind) error {
	if err := r.client.Publish(ctx, r.channel, string(kind)).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", r.channel, err)
	}
	return nil
}

func (r *Redis) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribing to %s: %w", r.channel, err)
	}
	r.logger.Info("change feed subscribed", "backend", "redis", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			dispatch(r.listener, r.logger, msg.Payload)
		}
	}
}

// PostgresChannel is the NOTIFY channel the store triggers write to.
const PostgresChannel = "sports_changes"

// Postgres listens for trigger-driven NOTIFY events. Publish is a no-op
// because the database announces its own writes.
type Postgres struct {
	dsn      string
	listener *Listener
	logger   *slog.Logger
	retry    time.Duration
}

func NewPostgres(dsn string, l *Listener, logger *slog.Logger) *Postgres {
	return &Postgres{dsn: dsn, listener: l, logger: logger, retry: 2 * time.Second}
}

func (p *Postgres) Publish(context.Context, sports.Kind) error { return nil }

// Run keeps a LISTEN connection open until ctx ends, reconnecting after a
// fixed delay whenever the connection drops.
func (p *Postgres) Run(ctx context.Context) error {
	for {
		err := p.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Warn("change feed connection lost", "backend", "postgres", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.retry):
		}
	}
}

func (p *Postgres) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, p.dsn)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+PostgresChannel); err != nil {
		return fmt.Errorf("listening on %s: %w", PostgresChannel, err)
	}
	p.logger.Info("change feed subscribed", "backend", "postgres", "channel", PostgresChannel)

	// Notifications sent while disconnected are gone; make every view refetch.
	for _, k := range sports.Kinds {
		p.listener.Dispatch(k)
	}

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("waiting for notification: %w", err)
		}
		dispatch(p.listener, p.logger, n.Payload)
	}
}

func dispatch(l *Listener, logger *slog.Logger, payload string) {
	kind := sports.Kind(payload)
	if !kind.Valid() {
		logger.Warn("ignoring change notification", "payload", payload)
		return
	}
	l.Dispatch(kind)
}
