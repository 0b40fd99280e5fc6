package quiz

import (
	"sync"
	"time"

	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/timer"
)

// Machine serializes dispatches against one State and runs the auto-advance
// timer. All reads and writes of the state go through it; the reducer itself
// stays pure.
type Machine struct {
	mu      sync.Mutex
	state   State
	timers  *timer.Manager
	delay   time.Duration
	pending int64

	// OptionsFor supplies the answer options for a question index when the
	// auto-advance timer fires NextQuestion. Nil means advance with no
	// options installed.
	OptionsFor func(questionIndex int) []models.Street

	// OnChange, when set, observes every post-dispatch state. Called outside
	// the machine lock.
	OnChange func(State)
}

// NewMachine creates a machine with the given auto-advance delay. The timer
// manager is shared; the machine only cancels ids it created.
func NewMachine(timers *timer.Manager, autoAdvanceDelay time.Duration) *Machine {
	return &Machine{
		state:  NewState(),
		timers: timers,
		delay:  autoAdvanceDelay,
	}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispatch applies an action and schedules or cancels the auto-advance timer
// as needed. Returns the resulting state.
func (m *Machine) Dispatch(action Action) State {
	m.mu.Lock()
	m.state = Reduce(m.state, action)
	next := m.state

	if next.Feedback == FeedbackTransitioning && next.AutoAdvance {
		if m.pending == 0 {
			generation := next.Generation
			m.pending = m.timers.Schedule(m.delay, 0, func() {
				m.autoAdvance(generation)
			})
		}
	} else if m.pending != 0 {
		m.timers.Cancel(m.pending)
		m.pending = 0
	}
	m.mu.Unlock()

	if m.OnChange != nil {
		m.OnChange(next)
	}
	return next
}

// autoAdvance fires NextQuestion for the generation the timer was scheduled
// against. If the state moved on in the meantime the timer is stale and does
// nothing.
func (m *Machine) autoAdvance(generation uint64) {
	m.mu.Lock()
	m.pending = 0
	stale := m.state.Generation != generation || m.state.Feedback != FeedbackTransitioning
	var options []models.Street
	if !stale && m.OptionsFor != nil {
		options = m.OptionsFor(m.state.CurrentQuestion + 1)
	}
	m.mu.Unlock()

	if stale {
		return
	}
	m.Dispatch(NextQuestion{Options: options})
}

// Close cancels any pending auto-advance timer.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != 0 {
		m.timers.Cancel(m.pending)
		m.pending = 0
	}
}
