package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message belongs to exactly one user and is only reachable through
// that user's collection. It is never updated after creation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
