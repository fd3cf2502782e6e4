package orchestrator

import (
	"context"
	"sync"

	"github.com/rl1809/order-fulfillment/internal/core/domain"
)

type fakeItemStore struct {
	mu         sync.Mutex
	items      map[string]domain.Item
	decrements []domain.LineItem

	getErr       error
	decrementErr error
	afterGet     func()
}

func newFakeItemStore(items ...domain.Item) *fakeItemStore {
	s := &fakeItemStore{items: make(map[string]domain.Item)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *fakeItemStore) PutItem(_ context.Context, item domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *fakeItemStore) GetItem(_ context.Context, id string) (*domain.Item, error) {
	s.mu.Lock()
	item, ok := s.items[id]
	err := s.getErr
	hook := s.afterGet
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (s *fakeItemStore) DecrementStock(_ context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decrementErr != nil {
		return s.decrementErr
	}
	item := s.items[id]
	item.ID = id
	item.Stock -= quantity
	s.items[id] = item
	s.decrements = append(s.decrements, domain.LineItem{ItemID: id, Quantity: quantity})
	return nil
}

func (s *fakeItemStore) stock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Stock
}

func (s *fakeItemStore) decrementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decrements)
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (s *fakeOrderStore) CreateOrder(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeOrderStore) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeOrderStore) all() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Order(nil), s.orders...)
}
