package shared

import "sync"

// GoalLocks hands out one mutex per goal ID.
// The zero value is ready to use.
type GoalLocks struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

// NewGoalLocks creates an empty GoalLocks.
func NewGoalLocks() *GoalLocks {
	return &GoalLocks{}
}

// Lock blocks until goalID is free and returns the matching unlock func.
func (g *GoalLocks) Lock(goalID string) (unlock func()) {
	g.mu.Lock()
	if g.locks == nil {
		g.locks = make(map[string]*sync.Mutex)
	}
	m, ok := g.locks[goalID]
	if !ok {
		m = &sync.Mutex{}
		g.locks[goalID] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}
