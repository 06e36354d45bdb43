package generation

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded means a newer generation was submitted for the same slot
// before this one finished; its result is discarded.
var ErrSuperseded = errors.New("generation superseded by a newer request")

type slotState struct {
	seq    uint64
	cancel context.CancelFunc
}

// Slots tracks in-flight generations per logical UI slot. The last submitted
// request wins: beginning a slot cancels the previous request's context and
// invalidates its sequence number.
type Slots struct {
	mu    sync.Mutex
	slots map[string]*slotState
}

func NewSlots() *Slots {
	return &Slots{slots: map[string]*slotState{}}
}

// Begin registers a new request for the slot, cancelling any in-flight one.
// The returned cancel must be called when the request finishes.
func (s *Slots) Begin(ctx context.Context, slot string) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.slots[slot]
	if ok && state.cancel != nil {
		state.cancel()
	} else if !ok {
		state = &slotState{}
		s.slots[slot] = state
	}
	state.seq++
	state.cancel = cancel

	return ctx, state.seq, cancel
}

// Current reports whether seq is still the latest submission for the slot.
func (s *Slots) Current(slot string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.slots[slot]
	return ok && state.seq == seq
}
