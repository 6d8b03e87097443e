package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                      sync.Mutex
	playersUpserted         int
	upsertFailures          int
	leaderboardQueries      int
	queryFailures           int
	queryDurations          []float64
	boardRefreshes          int
	staleRefreshesDiscarded int
	slackNotifSent          int
	slackNotifFailed        int
	startupTime             float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		queryDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayersUpserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersUpserted++
}

func (m *Mock) IncUpsertFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertFailures++
}

func (m *Mock) IncLeaderboardQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardQueries++
}

func (m *Mock) IncQueryFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryFailures++
}

func (m *Mock) ObserveQueryDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryDurations = append(m.queryDurations, seconds)
}

func (m *Mock) IncBoardRefreshes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boardRefreshes++
}

func (m *Mock) IncStaleRefreshesDiscarded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staleRefreshesDiscarded++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersUpserted returns the number of times IncPlayersUpserted was called.
func (m *Mock) PlayersUpserted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersUpserted
}

// UpsertFailures returns the number of times IncUpsertFailures was called.
func (m *Mock) UpsertFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertFailures
}

// LeaderboardQueries returns the number of times IncLeaderboardQueries was called.
func (m *Mock) LeaderboardQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardQueries
}

// QueryFailures returns the number of times IncQueryFailures was called.
func (m *Mock) QueryFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryFailures
}

// QueryDurations returns every observed query duration.
func (m *Mock) QueryDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.queryDurations...)
}

// BoardRefreshes returns the number of times IncBoardRefreshes was called.
func (m *Mock) BoardRefreshes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boardRefreshes
}

// StaleRefreshesDiscarded returns the number of times IncStaleRefreshesDiscarded was called.
func (m *Mock) StaleRefreshesDiscarded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staleRefreshesDiscarded
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
