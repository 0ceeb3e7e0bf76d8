package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkaran/murmur/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// AppendIfAccepting re-checks the owner's flag and inserts in one
// statement, so the check always sees the latest persisted value and
// concurrent sends to the same owner cannot lose each other.
func (r *MessageRepo) AppendIfAccepting(ctx context.Context, msg *domain.Message) (bool, error) {
	query := `
		INSERT INTO messages (id, user_id, content, created_at)
		SELECT $1, u.id, $3, $4
		FROM users u
		WHERE u.id = $2 AND u.is_accepting_messages`

	tag, err := r.pool.Exec(ctx, query, msg.ID, msg.OwnerID, msg.Content, msg.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *MessageRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Message, error) {
	query := `
		SELECT id, user_id, content, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.OwnerID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (r *MessageRepo) Delete(ctx context.Context, ownerID, messageID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1 AND user_id = $2`, messageID, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
