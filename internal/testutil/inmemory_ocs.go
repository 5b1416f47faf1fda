package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/teltrip/ocsreport/internal/ocs"
)

// OCSCall records one upstream call for assertions.
type OCSCall struct {
	Operation string
	Params    any
}

// Handler produces a scripted response for one wire operation.
type Handler func(params any) (*ocs.Response, error)

// InMemoryOCS is a scripted ocs.Client for tests. Operations without a
// handler answer with an empty response, which is how a tenant that does not
// support an operation behaves. It also instruments in-flight concurrency so
// pool-bound tests can assert the cap was honored.
type InMemoryOCS struct {
	mu          sync.Mutex
	handlers    map[string]Handler
	calls       []OCSCall
	delay       time.Duration
	inFlight    int
	maxInFlight int
}

var _ ocs.Client = (*InMemoryOCS)(nil)

func NewInMemoryOCS() *InMemoryOCS {
	return &InMemoryOCS{handlers: make(map[string]Handler)}
}

// Handle installs a scripted handler for a wire operation name.
func (s *InMemoryOCS) Handle(operation string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[operation] = h
}

// RespondWith scripts a fixed successful response body for an operation.
func (s *InMemoryOCS) RespondWith(operation string, data map[string]any) {
	s.Handle(operation, func(any) (*ocs.Response, error) {
		return &ocs.Response{StatusCode: 200, Data: data}, nil
	})
}

// FailWith scripts a fixed error for an operation.
func (s *InMemoryOCS) FailWith(operation string, err error) {
	s.Handle(operation, func(any) (*ocs.Response, error) {
		return nil, err
	})
}

// SetDelay makes every call take at least d, so concurrency instrumentation
// has something to observe.
func (s *InMemoryOCS) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *InMemoryOCS) Call(_ context.Context, operation string, params any) (*ocs.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, OCSCall{Operation: operation, Params: params})
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	h := s.handlers[operation]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if h == nil {
		return &ocs.Response{StatusCode: 200, Empty: true}, nil
	}
	return h(params)
}

// Calls returns a copy of every recorded call.
func (s *InMemoryOCS) Calls() []OCSCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OCSCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times an operation was called.
func (s *InMemoryOCS) CallCount(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Operation == operation {
			n++
		}
	}
	return n
}

// MaxInFlight returns the highest number of concurrently running calls
// observed so far.
func (s *InMemoryOCS) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}
