package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation of
// MessageRepository.
func NewMessageRepository(pool *pgxpool.Pool) repository.MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg == nil {
		return nil, domain.ErrInvalidPayload
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO messages (id, sender_id, receiver_id, content)
	VALUES ($1, $2, $3, $4)
	RETURNING is_read, created_at
	`
	err := r.pool.QueryRow(ctx, query, msg.ID, msg.SenderID, msg.ReceiverID, msg.Content).
		Scan(&msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepository) Conversation(ctx context.Context, userID, otherID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
	SELECT id, sender_id, receiver_id, content, is_read, created_at
	FROM messages
	WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
	ORDER BY created_at ASC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, otherID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) UnreadCount(ctx context.Context, receiverID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE`
	var count int64
	err := r.pool.QueryRow(ctx, query, receiverID).Scan(&count)
	return count, err
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, userID, otherID string) error {
	const query = `UPDATE messages SET is_read = TRUE WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE`
	_, err := r.pool.Exec(ctx, query, userID, otherID)
	return err
}
