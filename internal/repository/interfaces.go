package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// SetAcceptingMessages updates the flag and returns the updated
	// user, or nil if no user with that id exists.
	SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) (*domain.User, error)
}

type MessageRepository interface {
	// AppendIfAccepting inserts the message only if its owner is
	// currently accepting messages, as a single atomic statement.
	// Returns false if the owner's flag blocked the insert.
	AppendIfAccepting(ctx context.Context, msg *domain.Message) (bool, error)
	// ListByOwner returns the owner's messages in insertion order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Message, error)
	// Delete removes a message from its owner's collection. Returns
	// false if the owner has no message with that id.
	Delete(ctx context.Context, ownerID, messageID uuid.UUID) (bool, error)
}
