package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/domain"
)

// -------- test fakes --------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	err error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (f *fakeUserRepo) SetAcceptingMessages(ctx context.Context, id uuid.UUID, accepting bool) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.IsAcceptingMessages = accepting
	copied := *u
	return &copied, nil
}

// fakeMessageRepo mimics the conditional-append semantics of the
// Postgres implementation: the owner's latest flag is read and the
// insert performed under one lock.
type fakeMessageRepo struct {
	mu       sync.Mutex
	users    *fakeUserRepo
	messages []domain.Message

	appendErr error
	listErr   error
	deleteErr error
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{users: users}
}

func (f *fakeMessageRepo) AppendIfAccepting(ctx context.Context, msg *domain.Message) (bool, error) {
	if f.appendErr != nil {
		return false, f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users.mu.Lock()
	owner, ok := f.users.users[msg.OwnerID]
	accepting := ok && owner.IsAcceptingMessages
	f.users.mu.Unlock()
	if !accepting {
		return false, nil
	}
	f.messages = append(f.messages, *msg)
	return true, nil
}

func (f *fakeMessageRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.messages {
		if m.OwnerID == ownerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) Delete(ctx context.Context, ownerID, messageID uuid.UUID) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.messages {
		if m.ID == messageID && m.OwnerID == ownerID {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // recipient addresses
	codes []string
	err   error
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}
