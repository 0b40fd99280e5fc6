// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

type task struct {
	id       int64
	execute  time.Time
	interval time.Duration
	callback func()
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	t := x.(*task)
	t.index = n
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	t.index = -1
	*q = old[0 : n-1]
	return t
}

// Manager runs callbacks after a delay, optionally repeating. Used for the
// quiz auto-advance timers, which must be cancellable: Cancel before the
// deadline guarantees the callback never runs.
type Manager struct {
	queue   taskQueue
	mutex   sync.Mutex
	nextID  int64
	done    chan struct{}
	stopped bool
}

func NewManager() *Manager {
	m := &Manager{
		queue:  make(taskQueue, 0),
		nextID: 1,
		done:   make(chan struct{}),
	}
	heap.Init(&m.queue)
	go m.loop()
	return m
}

// Schedule registers callback to run after delay, repeating every interval if
// interval > 0. Returns an id for Cancel.
func (m *Manager) Schedule(delay, interval time.Duration, callback func()) int64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t := &task{
		id:       m.nextID,
		execute:  time.Now().Add(delay),
		interval: interval,
		callback: callback,
	}
	m.nextID++

	heap.Push(&m.queue, t)
	return t.id
}

// Cancel removes a pending task. A no-op for ids that already fired.
func (m *Manager) Cancel(id int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, t := range m.queue {
		if t.id == id {
			heap.Remove(&m.queue, i)
			break
		}
	}
}

// Stop shuts the manager down. Pending tasks are discarded.
func (m *Manager) Stop() {
	m.mutex.Lock()
	if m.stopped {
		m.mutex.Unlock()
		return
	}
	m.stopped = true
	m.queue = m.queue[:0]
	m.mutex.Unlock()
	close(m.done)
}

func (m *Manager) loop() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, t := range m.due(time.Now()) {
				go t.callback()
			}
		case <-m.done:
			return
		}
	}
}

func (m *Manager) due(now time.Time) []*task {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var fired []*task
	for m.queue.Len() > 0 {
		t := m.queue[0]
		if t.execute.After(now) {
			break
		}
		heap.Pop(&m.queue)
		fired = append(fired, t)

		if t.interval > 0 {
			t.execute = now.Add(t.interval)
			heap.Push(&m.queue, t)
		}
	}
	return fired
}
