package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkaran/murmur/internal/domain"
	"github.com/vkaran/murmur/internal/service"
)

// -------- in-memory repos for handler tests --------

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (r *memUserRepo) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.IsAcceptingMessages = accepting
	copied := *u
	return &copied, nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	users    *memUserRepo
	messages []domain.Message
}

func (r *memMessageRepo) AppendIfAccepting(ctx context.Context, msg *domain.Message) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users.mu.Lock()
	owner, ok := r.users.users[msg.OwnerID]
	accepting := ok && owner.IsAcceptingMessages
	r.users.mu.Unlock()
	if !accepting {
		return false, nil
	}
	r.messages = append(r.messages, *msg)
	return true, nil
}

func (r *memMessageRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) Delete(ctx context.Context, ownerID, messageID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if m.ID == messageID && m.OwnerID == ownerID {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func seedUser(username string, accepting bool) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:                  uuid.New(),
		Email:               username + "@example.com",
		Username:            username,
		IsVerified:          true,
		IsAcceptingMessages: accepting,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func newMessageFixture(users ...*domain.User) (*MessageHandler, *memMessageRepo) {
	userRepo := newMemUserRepo(users...)
	messageRepo := &memMessageRepo{users: userRepo}
	return NewMessageHandler(service.NewMessageService(userRepo, messageRepo)), messageRepo
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// -------- tests --------

func TestSubmitHandler_Success(t *testing.T) {
	h, repo := newMessageFixture(seedUser("alice", true))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"recipientUsername":"alice","content":"Hello!"}`))
	h.Submit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Message sent successfully", env.Message)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "Hello!", repo.messages[0].Content)
}

func TestSubmitHandler_Validation(t *testing.T) {
	h, repo := newMessageFixture(seedUser("alice", true))

	cases := []struct {
		name string
		body string
	}{
		{"empty content", `{"recipientUsername":"alice","content":""}`},
		{"too long", `{"recipientUsername":"alice","content":"` + strings.Repeat("a", 501) + `"}`},
		{"missing recipient", `{"content":"hi"}`},
		{"bad json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(tc.body))
			h.Submit(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, decodeEnvelope(t, rec).Success)
		})
	}
	assert.Empty(t, repo.messages)
}

func TestSubmitHandler_RecipientNotFound(t *testing.T) {
	h, _ := newMessageFixture()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"recipientUsername":"ghost","content":"hi"}`))
	h.Submit(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recipient user not found", decodeEnvelope(t, rec).Message)
}

func TestSubmitHandler_NotAccepting(t *testing.T) {
	h, repo := newMessageFixture(seedUser("bob", false))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages",
		strings.NewReader(`{"recipientUsername":"bob","content":"Hi"}`))
	h.Submit(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Recipient is not accepting messages", decodeEnvelope(t, rec).Message)
	assert.Empty(t, repo.messages)
}

func TestListHandler_NewestFirst(t *testing.T) {
	alice := seedUser("alice", true)
	h, repo := newMessageFixture(alice)

	base := time.Now().UTC()
	for i, offset := range []time.Duration{time.Minute, 3 * time.Minute, 2 * time.Minute} {
		repo.messages = append(repo.messages, domain.Message{
			ID:        uuid.New(),
			OwnerID:   alice.ID,
			Content:   []string{"first", "third", "second"}[i],
			CreatedAt: base.Add(offset),
		})
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages?username=alice", nil)
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []domain.Message `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "third", resp.Data[0].Content)
	assert.Equal(t, "second", resp.Data[1].Content)
	assert.Equal(t, "first", resp.Data[2].Content)
}

func TestListHandler_MissingUsername(t *testing.T) {
	h, _ := newMessageFixture()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username is required", decodeEnvelope(t, rec).Message)
}

func TestListHandler_UnknownUser(t *testing.T) {
	h, _ := newMessageFixture()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages?username=ghost", nil)
	h.List(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHandler_EmptyInboxIsEmptyArray(t *testing.T) {
	h, _ := newMessageFixture(seedUser("bob", false))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/messages?username=bob", nil)
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
