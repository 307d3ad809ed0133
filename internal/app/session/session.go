// Package session keeps the per-caller dialogue state in memory.
//
// State is process-local: a restart drops pending registrations and admin
// logins. Pending steps expire after a TTL; the admin flag does not.
package session

import (
	"sync"
	"time"
)

// Step identifies the prompt a caller still has to answer.
type Step int

const (
	StepNone Step = iota
	StepAwaitingName
	StepAwaitingGroup
	StepAwaitingAdminPassword
	StepAwaitingAdminActionInput
)

func (s Step) String() string {
	switch s {
	case StepNone:
		return "NONE"
	case StepAwaitingName:
		return "AWAITING_NAME"
	case StepAwaitingGroup:
		return "AWAITING_GROUP"
	case StepAwaitingAdminPassword:
		return "AWAITING_ADMIN_PASSWORD"
	case StepAwaitingAdminActionInput:
		return "AWAITING_ADMIN_ACTION_INPUT"
	default:
		return "UNKNOWN"
	}
}

// AdminAction is the admin operation whose input is being collected.
type AdminAction int

const (
	AdminActionNone AdminAction = iota
	AdminActionAddNews
)

// State is a caller's dialogue state. The zero value means idle, not admin.
type State struct {
	Step   Step
	Name   string      // full name accepted in AWAITING_NAME
	Action AdminAction // meaningful in AWAITING_ADMIN_ACTION_INPUT
	Admin  bool
	// UpdatedAt is set by the cache on every Set.
	UpdatedAt time.Time
}

// Pending reports whether the caller is in the middle of a multi-step prompt.
func (s State) Pending() bool {
	return s.Step != StepNone
}

// Idle returns s with the pending step and its accumulated input dropped.
func (s State) Idle() State {
	s.Step = StepNone
	s.Name = ""
	s.Action = AdminActionNone
	return s
}

func (s State) empty() bool {
	return !s.Pending() && !s.Admin
}

const DefaultTTL = 15 * time.Minute

// Cache maps caller ids to their State.
//
// Reads and writes are guarded by one RWMutex; Lock provides the per-caller
// serialization a whole read-modify-write transition needs.
type Cache struct {
	mu     sync.RWMutex
	states map[int64]State

	locksMu sync.Mutex
	locks   map[int64]*callerLock

	ttl time.Duration
	now func() time.Time
}

type callerLock struct {
	mu   sync.Mutex
	refs int
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets how long a pending step survives without activity. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		states: make(map[int64]State),
		locks:  make(map[int64]*callerLock),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the caller's state. ok is false when the caller has neither a
// pending step nor the admin flag. An expired pending step reads as idle.
func (c *Cache) Get(callerID int64) (State, bool) {
	c.mu.RLock()
	st, ok := c.states[callerID]
	c.mu.RUnlock()
	if !ok {
		return State{}, false
	}
	if c.expired(st) {
		st = st.Idle()
	}
	return st, !st.empty()
}

// Set stores st for the caller. Storing an idle non-admin state clears the entry.
func (c *Cache) Set(callerID int64, st State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st.empty() {
		delete(c.states, callerID)
		return
	}
	st.UpdatedAt = c.now()
	c.states[callerID] = st
}

// Clear removes everything known about the caller, including the admin flag.
func (c *Cache) Clear(callerID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, callerID)
}

// Len returns the number of callers with a stored state.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}

// Sweep drops expired pending steps and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, st := range c.states {
		if !c.expired(st) {
			continue
		}
		n++
		st = st.Idle()
		if st.empty() {
			delete(c.states, id)
			continue
		}
		c.states[id] = st
	}
	return n
}

func (c *Cache) expired(st State) bool {
	return c.ttl > 0 && st.Pending() && c.now().Sub(st.UpdatedAt) > c.ttl
}

// Lock blocks until the caller's transition lock is held and returns its release func.
// Locks of different callers are independent.
func (c *Cache) Lock(callerID int64) (unlock func()) {
	c.locksMu.Lock()
	l, ok := c.locks[callerID]
	if !ok {
		l = &callerLock{}
		c.locks[callerID] = l
	}
	l.refs++
	c.locksMu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			c.locksMu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(c.locks, callerID)
			}
			c.locksMu.Unlock()
		})
	}
}
