package message

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/repository"
)

type UseCase struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	logger   *zap.Logger
}

func New(messages repository.MessageRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

// Send delivers a message to another user. Delivery is poll-based; the
// receiver sees it on their next conversation fetch.
func (uc *UseCase) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError(map[string]string{"content": "message content is required"})
	}
	if senderID == receiverID {
		return nil, domain.NewValidationError(map[string]string{"receiver_id": "cannot message yourself"})
	}
	if _, err := uc.users.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	return uc.messages.Create(ctx, &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	})
}

// Conversation returns the exchange with another user, oldest first, and
// marks everything they sent to the caller as read.
func (uc *UseCase) Conversation(ctx context.Context, userID, otherID string, limit int) ([]domain.Message, error) {
	msgs, err := uc.messages.Conversation(ctx, userID, otherID, limit)
	if err != nil {
		return nil, err
	}
	if err := uc.messages.MarkConversationRead(ctx, userID, otherID); err != nil {
		uc.logger.Warn("failed to mark conversation read", zap.Error(err))
	}
	return msgs, nil
}

// UnreadCount returns the caller's notification badge count.
func (uc *UseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.messages.UnreadCount(ctx, userID)
}
