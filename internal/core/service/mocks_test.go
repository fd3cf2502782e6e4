package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
	"github.com/rl1809/order-fulfillment/internal/port"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// doubleEncode wraps the JSON encoding of v in a JSON string literal.
func doubleEncode(v any) []byte {
	inner, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		panic(err)
	}
	return outer
}

// Mock WorkflowStarter
type mockStarter struct {
	mu     sync.Mutex
	starts [][]domain.LineItem
	err    error
}

func (m *mockStarter) StartFulfillment(ctx context.Context, order []domain.LineItem) (port.Execution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return port.Execution{}, m.err
	}
	m.starts = append(m.starts, order)
	return port.Execution{WorkflowID: "fulfillment-test", RunID: "run-test"}, nil
}

func (m *mockStarter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.starts)
}

// Mock ItemRepository
type mockItemRepo struct {
	mu    sync.Mutex
	items map[string]domain.Item
	err   error
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[string]domain.Item)}
}

func (m *mockItemRepo) PutItem(ctx context.Context, item domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (m *mockItemRepo) DecrementStock(ctx context.Context, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := m.items[itemID]
	item.Stock -= quantity
	m.items[itemID] = item
	return nil
}

func (m *mockItemRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Mock UploadSigner
type mockSigner struct {
	keys []string
	ttl  time.Duration
}

func (m *mockSigner) PresignUpload(ctx context.Context, objectKey string) (port.UploadAuthorization, error) {
	m.keys = append(m.keys, objectKey)
	return port.UploadAuthorization{
		URL:       "https://uploads.test/" + objectKey,
		Method:    "PUT",
		ExpiresIn: m.ttl,
	}, nil
}

// Mock UserRepository
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	err   error
}

func (m *mockUserRepo) PutUser(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.users == nil {
		m.users = make(map[string]domain.User)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}
