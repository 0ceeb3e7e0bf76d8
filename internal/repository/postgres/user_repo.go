package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vkaran/murmur/internal/domain"
)

const userColumns = "id, email, username, password_hash, verify_code, verify_code_expires_at, is_verified, is_accepting_messages, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, verify_code, verify_code_expires_at, is_verified, is_accepting_messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.VerifyCode, user.VerifyCodeExpiresAt,
		user.IsVerified, user.IsAcceptingMessages,
		user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET is_verified = TRUE, updated_at = $1 WHERE id = $2`, time.Now(), id)
	return err
}

func (r *UserRepo) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) (*domain.User, error) {
	query := `
		UPDATE users SET is_accepting_messages = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + userColumns

	var u domain.User
	err := r.pool.QueryRow(ctx, query, accepting, time.Now(), id).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.VerifyCode, &u.VerifyCodeExpiresAt,
		&u.IsVerified, &u.IsAcceptingMessages,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.VerifyCode, &u.VerifyCodeExpiresAt,
		&u.IsVerified, &u.IsAcceptingMessages,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
