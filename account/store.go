// Package account maintains per-client balance state.
package account

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Account is the balance state of one client.
//
// Total is derived from Available and Held rather than stored, so the
// total == available + held identity holds after every mutation.
type Account struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// Total returns the account's full balance.
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Store maps client ids to accounts. Accounts are created lazily on first
// reference and survive for the life of the run.
type Store struct {
	mu    sync.Mutex
	accts map[uint16]*Account
}

// New creates an empty store.
func New() *Store {
	return &Store{accts: make(map[uint16]*Account)}
}

// Get returns a copy of the client's account without creating one.
func (s *Store) Get(client uint16) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accts[client]
	if !ok {
		return Account{}, false
	}

	return *a, true
}

// GetOrCreate returns a copy of the client's account, creating one with zero
// balances and unlocked state if absent.
func (s *Store) GetOrCreate(client uint16) Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.getOrCreate(client)
}

// ApplyDelta adjusts available and held in one step under the store lock.
// This is the only balance mutation primitive.
func (s *Store) ApplyDelta(client uint16, availableDelta, heldDelta decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.getOrCreate(client)
	a.Available = a.Available.Add(availableDelta)
	a.Held = a.Held.Add(heldDelta)
}

// Lock freezes the client's account for the rest of the run.
func (s *Store) Lock(client uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreate(client).Locked = true
}

// Snapshot returns value copies of all accounts ordered by ascending client
// id, so report output is deterministic across runs.
func (s *Store) Snapshot() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Account, 0, len(s.accts))
	for _, a := range s.accts {
		out = append(out, *a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })

	return out
}

func (s *Store) getOrCreate(client uint16) *Account {
	a, ok := s.accts[client]
	if !ok {
		a = &Account{Client: client, Available: decimal.Zero, Held: decimal.Zero}
		s.accts[client] = a
	}

	return a
}
