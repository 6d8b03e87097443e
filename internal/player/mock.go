package player

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetTopPlayersFunc func(ctx context.Context, limit int) ([]Player, error)
	GetPlayerFunc     func(ctx context.Context, uuid string) (*Player, error)
	UpsertPlayerFunc  func(ctx context.Context, p Player) (Player, bool, error)
	DeletePlayerFunc  func(ctx context.Context, uuid string) error
	CountPlayersFunc  func(ctx context.Context) (int, error)

	// Call records
	GetTopPlayersCalls []int
	UpsertPlayerCalls  []Player
	DeletePlayerCalls  []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetTopPlayers(ctx context.Context, limit int) ([]Player, error) {
	m.mu.Lock()
	m.GetTopPlayersCalls = append(m.GetTopPlayersCalls, limit)
	fn := m.GetTopPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, limit)
	}
	return []Player{}, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, uuid string) (*Player, error) {
	m.mu.Lock()
	fn := m.GetPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, uuid)
	}
	return nil, ErrNotFound
}

func (m *MockStore) UpsertPlayer(ctx context.Context, p Player) (Player, bool, error) {
	m.mu.Lock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, p)
	fn := m.UpsertPlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, p)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.LastActive
	}
	return p, true, nil
}

func (m *MockStore) DeletePlayer(ctx context.Context, uuid string) error {
	m.mu.Lock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, uuid)
	fn := m.DeletePlayerFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, uuid)
	}
	return nil
}

func (m *MockStore) CountPlayers(ctx context.Context) (int, error) {
	m.mu.Lock()
	fn := m.CountPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return 0, nil
}

// UpsertCalls returns a copy of the recorded UpsertPlayer arguments.
func (m *MockStore) UpsertCalls() []Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Player(nil), m.UpsertPlayerCalls...)
}

// TopPlayersCalls returns a copy of the limits GetTopPlayers was called with.
func (m *MockStore) TopPlayersCalls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.GetTopPlayersCalls...)
}
