package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SubscriberRepository is the directory of chats that receive broadcast
// signal dispatches.
type SubscriberRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSubscriberRepository(pool PgxPool, tracer trace.Tracer) *SubscriberRepository {
	return &SubscriberRepository{pool: pool, tracer: tracer}
}

func (r *SubscriberRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "subscriber-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS subscribers (
			chat_id    BIGINT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// Subscribe adds a chat to the directory. Returns false when the chat was
// already subscribed.
func (r *SubscriberRepository) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	_, span := r.tracer.Start(ctx, "subscriber-repo.subscribe")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO subscribers (chat_id) VALUES ($1) ON CONFLICT (chat_id) DO NOTHING`,
		chatID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Unsubscribe removes a chat. Returns false when it was not subscribed.
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	_, span := r.tracer.Start(ctx, "subscriber-repo.unsubscribe")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE chat_id = $1`, chatID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SubscriberRepository) ListSubscribers(ctx context.Context) ([]int64, error) {
	_, span := r.tracer.Start(ctx, "subscriber-repo.list-subscribers")
	defer span.End()

	rows, err := r.pool.Query(ctx, `SELECT chat_id FROM subscribers ORDER BY chat_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatIDs []int64
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return nil, err
		}
		chatIDs = append(chatIDs, chatID)
	}
	return chatIDs, rows.Err()
}

func (r *SubscriberRepository) IsSubscribed(ctx context.Context, chatID int64) (bool, error) {
	_, span := r.tracer.Start(ctx, "subscriber-repo.is-subscribed")
	defer span.End()

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscribers WHERE chat_id = $1)`, chatID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
