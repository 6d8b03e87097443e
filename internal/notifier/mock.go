package notifier

import (
	"sync"

	"github.com/Lerex702/elorank/internal/player"
)

// SendNewLeaderCall holds the arguments for a call to SendNewLeader.
type SendNewLeaderCall struct {
	Leader   player.RankedPlayer
	Previous *player.RankedPlayer
	DryRun   bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendNewLeaderFunc  func(leader player.RankedPlayer, previous *player.RankedPlayer, dryRun bool) error
	SendNewLeaderCalls []SendNewLeaderCall
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendNewLeader(leader player.RankedPlayer, previous *player.RankedPlayer, dryRun bool) error {
	m.mu.Lock()
	m.SendNewLeaderCalls = append(m.SendNewLeaderCalls, SendNewLeaderCall{Leader: leader, Previous: previous, DryRun: dryRun})
	fn := m.SendNewLeaderFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(leader, previous, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendNewLeader calls.
func (m *Mock) Calls() []SendNewLeaderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendNewLeaderCall(nil), m.SendNewLeaderCalls...)
}
