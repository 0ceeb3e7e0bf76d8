package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/domain"
	"github.com/vkaran/murmur/internal/repository"
	"github.com/vkaran/murmur/pkg/validator"
)

var (
	ErrRecipientNotFound    = errors.New("recipient user not found")
	ErrNotAcceptingMessages = errors.New("recipient is not accepting messages")
	ErrMessageNotFound      = errors.New("message not found")
)

// ValidationError carries the first violated content constraint.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Notifier pushes real-time events to connected recipients.
type Notifier interface {
	NotifyNewMessage(ownerID uuid.UUID, msg *domain.Message)
}

type MessageService struct {
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	notifier    Notifier
}

func NewMessageService(userRepo repository.UserRepository, messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SubmitMessageInput struct {
	RecipientUsername string `json:"recipientUsername"`
	Content           string `json:"content"`
}

// Submit validates the content, resolves the recipient and appends the
// message if the recipient currently accepts messages. The acceptance
// check and the append happen in one atomic storage operation.
func (s *MessageService) Submit(ctx context.Context, input SubmitMessageInput) (*domain.Message, error) {
	if reason := validator.ValidateMessageContent(input.Content); reason != "" {
		return nil, &ValidationError{Reason: reason}
	}

	recipient, err := s.userRepo.GetByUsername(ctx, input.RecipientUsername)
	if err != nil {
		return nil, fmt.Errorf("looking up recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	msg := &domain.Message{
		ID:        uuid.New(),
		OwnerID:   recipient.ID,
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}

	inserted, err := s.messageRepo.AppendIfAccepting(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	if !inserted {
		// Users are never deleted, so a blocked insert means the
		// latest persisted flag is false.
		return nil, ErrNotAcceptingMessages
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(recipient.ID, msg)
	}

	return msg, nil
}

// List returns the user's messages newest first. Ordering is applied
// at read time; storage hands back insertion order.
func (s *MessageService) List(ctx context.Context, username string) ([]domain.Message, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrRecipientNotFound
	}

	messages, err := s.messageRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})

	if messages == nil {
		messages = []domain.Message{}
	}

	return messages, nil
}

// Delete removes one of the owner's messages. The lookup is scoped to
// the owner, so a foreign message id reads as not found.
func (s *MessageService) Delete(ctx context.Context, ownerID, messageID uuid.UUID) error {
	deleted, err := s.messageRepo.Delete(ctx, ownerID, messageID)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	if !deleted {
		return ErrMessageNotFound
	}
	return nil
}
