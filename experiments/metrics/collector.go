package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

// SearchMetric describes one decision taken by a searcher.
type SearchMetric struct {
	Algorithm  string
	Phase      string
	Round      int
	Player     int
	Candidates int
	Trials     int
	TreeNodes  int
	BestMove   string
	BestScore  int
	StartTime  time.Time
	Duration   time.Duration
}

type Collector interface {
	Start(algorithm, phase string, round, player, candidates int)
	AddTrial()
	SetTreeNodes(n int)
	Complete(bestMove string, bestScore int) SearchMetric
	// Drain returns the metrics completed since the last call.
	Drain() []SearchMetric
}

type collector struct {
	clock     quartz.Clock
	mu        sync.Mutex
	current   SearchMetric
	trials    atomic.Int32
	completed []SearchMetric
}

func NewCollector(clock quartz.Clock) Collector {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &collector{clock: clock}
}

func (m *collector) Start(algorithm, phase string, round, player, candidates int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = SearchMetric{
		Algorithm:  algorithm,
		Phase:      phase,
		Round:      round,
		Player:     player,
		Candidates: candidates,
		StartTime:  m.clock.Now(),
	}
	m.trials.Store(0)
}

func (m *collector) AddTrial() {
	m.trials.Add(1)
}

func (m *collector) SetTreeNodes(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current.TreeNodes = n
}

func (m *collector) Complete(bestMove string, bestScore int) SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	metric := m.current
	metric.Trials = int(m.trials.Load())
	metric.BestMove = bestMove
	metric.BestScore = bestScore
	metric.Duration = m.clock.Now().Sub(metric.StartTime)
	m.completed = append(m.completed, metric)
	return metric
}

func (m *collector) Drain() []SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	drained := m.completed
	m.completed = nil
	return drained
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm, phase string, round, player, candidates int) {}
func (m *dummyCollector) AddTrial()                                                    {}
func (m *dummyCollector) SetTreeNodes(n int)                                           {}
func (m *dummyCollector) Complete(bestMove string, bestScore int) SearchMetric         { return SearchMetric{} }
func (m *dummyCollector) Drain() []SearchMetric                                        { return nil }
