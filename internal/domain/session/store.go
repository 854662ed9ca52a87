package session

import (
	"sync"
	"time"

	"pet-lost-found/internal/domain/proximity"

	"github.com/google/uuid"
)

// DefaultMaxIdle: sesiones sin actividad se descartan después de este tiempo.
const DefaultMaxIdle = 12 * time.Hour

// Store guarda las sesiones en memoria.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]*State
	maxIdle time.Duration
	now     func() time.Time
}

func NewStore(maxIdle time.Duration) *Store {
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdle
	}
	return &Store{
		byID:    make(map[string]*State),
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

// Get devuelve una copia del estado.
func (s *Store) Get(id string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byID[id]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Ensure devuelve la sesión id o crea una nueva si no existe/expiró.
func (s *Store) Ensure(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if st, ok := s.byID[id]; ok && now.Sub(st.LastSeen) <= s.maxIdle {
		st.LastSeen = now
		return *st
	}

	s.pruneLocked(now)

	st := &State{
		ID:       uuid.NewString(),
		View:     ViewHome,
		Map:      proximity.Map{Selected: -1},
		LastSeen: now,
	}
	s.byID[st.ID] = st
	return *st
}

// Update aplica fn sobre la sesión bajo lock. Devuelve el estado resultante.
func (s *Store) Update(id string, fn func(st *State)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[id]
	if !ok {
		return State{}, false
	}
	fn(st)
	st.LastSeen = s.now()
	return *st, true
}

// Len es la cantidad de sesiones vivas.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *Store) pruneLocked(now time.Time) {
	for id, st := range s.byID {
		if now.Sub(st.LastSeen) > s.maxIdle {
			delete(s.byID, id)
		}
	}
}
