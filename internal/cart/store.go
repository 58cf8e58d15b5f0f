package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps one cart per operator session. Different operators hit the
// server concurrently, so the session map is guarded; each individual cart is
// still driven sequentially by its single operator.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the operator's cart, creating an empty one on first use.
func (s *Store) Get(operatorID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[operatorID]
	if !ok {
		c = New()
		s.carts[operatorID] = c
	}
	return c
}

// Drop discards the operator's cart entirely (end of shift).
func (s *Store) Drop(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operatorID)
}
