// Package server provides the service-side wrapper that runs the
// identifier codec and the trace aggregator behind the aelf.Service
// interface, with lifecycle enforcement, logging and metrics.
package server

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/blockberries/aelf"
)

// lifecycleState represents a state in the server lifecycle.
type lifecycleState uint32

const (
	// stateServing: calls are accepted.
	stateServing lifecycleState = iota
	// stateDraining: Close has been called; new calls are rejected
	// while in-flight ones finish.
	stateDraining
	// stateClosed: no call is in flight and none will be accepted.
	stateClosed
)

func (s lifecycleState) String() string {
	switch s {
	case stateServing:
		return "Serving"
	case stateDraining:
		return "Draining"
	case stateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// LifecycleGuard admits calls until Close and lets Close wait for the
// calls already admitted.
type LifecycleGuard struct {
	state    atomic.Uint32
	inflight sync.WaitGroup
	// mu orders Enter against Close so no call is admitted after
	// Close has started waiting.
	mu sync.RWMutex
}

// NewLifecycleGuard creates a guard in the Serving state.
func NewLifecycleGuard() *LifecycleGuard {
	g := &LifecycleGuard{}
	g.state.Store(uint32(stateServing))
	return g
}

// State returns the current lifecycle state.
func (g *LifecycleGuard) State() string {
	return lifecycleState(g.state.Load()).String()
}

// Enter admits a call to method. It returns a *aelf.ClosedError once
// Close has been called. Every successful Enter must be paired with
// Leave.
func (g *LifecycleGuard) Enter(method string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if lifecycleState(g.state.Load()) != stateServing {
		return aelf.NewClosedError(method)
	}
	g.inflight.Add(1)
	return nil
}

// Leave marks an admitted call as finished.
func (g *LifecycleGuard) Leave() {
	g.inflight.Done()
}

// Close stops admitting calls and waits for in-flight ones. It
// reports false if the guard was already closed.
func (g *LifecycleGuard) Close() bool {
	g.mu.Lock()
	if !g.state.CompareAndSwap(uint32(stateServing), uint32(stateDraining)) {
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()

	g.inflight.Wait()
	g.state.Store(uint32(stateClosed))
	return true
}

// IsServing returns true if the guard still admits calls.
func (g *LifecycleGuard) IsServing() bool {
	return lifecycleState(g.state.Load()) == stateServing
}
