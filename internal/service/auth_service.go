package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/domain"
	"github.com/vkaran/murmur/internal/repository"
	"golang.org/x/crypto/argon2"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrNotVerified   = errors.New("account is not verified")
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrCodeExpired   = errors.New("verification code has expired")
)

const verifyCodeTTL = time.Hour

// Mailer delivers the verification code to a new user.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, username, code string) error
}

type AuthService struct {
	userRepo  repository.UserRepository
	mailer    Mailer
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
	}
}

type SignUpInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type VerifyInput struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// SignUp creates an unverified user and emails the verification code.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	code, err := generateVerifyCode()
	if err != nil {
		return nil, fmt.Errorf("generating verification code: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:                  uuid.New(),
		Email:               input.Email,
		Username:            input.Username,
		PasswordHash:        hash,
		VerifyCode:          code,
		VerifyCodeExpiresAt: now.Add(verifyCodeTTL),
		IsVerified:          false,
		IsAcceptingMessages: true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Username, code); err != nil {
		// The account exists; the user can still verify once email
		// delivery recovers.
		log.Printf("ERROR sending verification email to %s: %v", user.Email, err)
	}

	return user, nil
}

// Verify marks the user verified if the code matches and has not
// expired.
func (s *AuthService) Verify(ctx context.Context, input VerifyInput) error {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if subtle.ConstantTimeCompare([]byte(user.VerifyCode), []byte(input.Code)) != 1 {
		return ErrInvalidCode
	}
	if time.Now().After(user.VerifyCodeExpiresAt) {
		return ErrCodeExpired
	}

	return s.userRepo.MarkVerified(ctx, user.ID)
}

// SignIn accepts an email address or a username as the identifier.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByUsername(ctx, input.Identifier)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func generateVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
