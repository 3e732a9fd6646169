package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down has elapsed.
	StateOpen

	// StateHalfOpen lets a limited number of probe requests through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a CircuitBreaker.
type BreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// CoolDown is how long the circuit stays open before probing.
	CoolDown time.Duration

	// HalfOpenLimit is both the number of concurrent probes allowed and the
	// number of probe successes needed to close the circuit.
	HalfOpenLimit int
}

// CircuitBreaker stops calling the journal service after repeated failures
// so an unreachable server fails fast instead of waiting out every retry.
//
//	closed    --MaxFailures failures-->  open
//	open      --CoolDown elapsed------>  half-open
//	half-open --HalfOpenLimit ok------>  closed
//	half-open --any failure----------->  open
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      BreakerConfig
	state    State
	failures int
	probes   int
	passed   int
	openedAt time.Time

	onChange func(from, to State)
	now      func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker. Zero limits are
// raised to 1.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after every transition. It is called
// without the lock held.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onChange = fn
}

// Allow reports whether a request may proceed. Every allowed request must
// be followed by exactly one Success or Failure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var allowed bool
	var from State
	changed := false

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.CoolDown {
			from, changed = cb.moveTo(StateHalfOpen)
			cb.probes = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenLimit {
			cb.probes++
			allowed = true
		}
	}

	cb.unlockAndNotify(from, changed)

	return allowed
}

// Success records a request that reached the server and got a non-5xx answer.
func (cb *CircuitBreaker) Success() {
	cb.mu.Lock()

	var from State
	changed := false

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.probes--
		cb.passed++

		if cb.passed >= cb.cfg.HalfOpenLimit {
			from, changed = cb.moveTo(StateClosed)
		}
	}

	cb.unlockAndNotify(from, changed)
}

// Failure records a request that could not reach the server or got a 5xx.
func (cb *CircuitBreaker) Failure() {
	cb.mu.Lock()

	var from State
	changed := false

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			from, changed = cb.moveTo(StateOpen)
		}

	case StateHalfOpen:
		cb.probes--
		from, changed = cb.moveTo(StateOpen)
	}

	cb.unlockAndNotify(from, changed)
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// moveTo must be called with the lock held.
func (cb *CircuitBreaker) moveTo(to State) (State, bool) {
	from := cb.state
	if from == to {
		return from, false
	}

	cb.state = to
	cb.failures = 0
	cb.passed = 0

	if to == StateOpen {
		cb.openedAt = cb.now()
		cb.probes = 0
	}

	return from, true
}

func (cb *CircuitBreaker) unlockAndNotify(from State, changed bool) {
	to := cb.state
	fn := cb.onChange
	cb.mu.Unlock()

	if changed && fn != nil {
		fn(from, to)
	}
}
