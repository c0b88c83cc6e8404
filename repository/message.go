package repository

import (
	"context"

	"github.com/jobdeck/backend/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// Conversation returns messages between two users, oldest first.
	Conversation(ctx context.Context, userID, otherID string, limit int) ([]domain.Message, error)
	UnreadCount(ctx context.Context, receiverID string) (int64, error)
	// MarkConversationRead flags everything otherID sent to userID as read.
	MarkConversationRead(ctx context.Context, userID, otherID string) error
}
