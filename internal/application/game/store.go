package game

import (
	"context"
	"sync"

	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
)

// Mutation computes the next state from the current one
type Mutation func(domainGame.State) (domainGame.State, error)

// Store owns the live game state and serializes every change to it.
//
// Dispatch runs read, compute and replace under one lock, so there is a
// single writer at a time. Readers get the current value from Snapshot;
// values are never mutated after being stored, so sharing them is safe.
// Subscribers receive the new state after each successful replace on
// buffered channels. A subscriber that falls behind misses intermediate
// states but always gets a later one.
type Store struct {
	mu    sync.Mutex
	state domainGame.State

	subMu       sync.RWMutex
	subscribers []chan domainGame.State
}

// NewStore creates a store holding initial
func NewStore(initial domainGame.State) *Store {
	return &Store{state: initial}
}

// Snapshot returns the current state
func (s *Store) Snapshot() domainGame.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a mutation. On error the stored state is left as it was
// and subscribers are not notified.
func (s *Store) Dispatch(ctx context.Context, mutate Mutation) (domainGame.State, error) {
	if err := ctx.Err(); err != nil {
		return domainGame.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	s.publish(next)
	return next, nil
}

// Subscribe returns a channel that receives every new state.
// Caller must Unsubscribe when done.
func (s *Store) Subscribe() <-chan domainGame.State {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan domainGame.State, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel
func (s *Store) Unsubscribe(ch <-chan domainGame.State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, c := range s.subscribers {
		if c == ch {
			close(c)
			s.subscribers[i] = s.subscribers[len(s.subscribers)-1]
			s.subscribers = s.subscribers[:len(s.subscribers)-1]
			return
		}
	}
}

// SubscriberCount returns the number of live subscriptions
func (s *Store) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subscribers)
}

// publish delivers state without blocking. A full buffer holds an older
// state, which is dropped in favour of the new one.
func (s *Store) publish(state domainGame.State) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- state:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
