package sessionsRepo

import (
	"sync"
	"time"

	"fixpoint/models"
)

// MemorySessionStore implements Store in process memory. Default backing for
// single-process deployments and tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.BookingSession
}

// NewMemorySessionStore returns an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.BookingSession)}
}

// cloneSession deep-copies the session so stored state never shares Steps,
// payload maps or the pricing snapshot with caller-held values.
func cloneSession(s models.BookingSession) models.BookingSession {
	out := s
	if s.Steps != nil {
		out.Steps = make([]models.BookingStep, len(s.Steps))
		copy(out.Steps, s.Steps)
		for i := range out.Steps {
			if p := out.Steps[i].Payload; p != nil {
				cp := make(map[string]any, len(p))
				for k, v := range p {
					cp[k] = v
				}
				out.Steps[i].Payload = cp
			}
		}
	}
	if s.ServiceIDs != nil {
		out.ServiceIDs = append([]string(nil), s.ServiceIDs...)
	}
	if s.Slot != nil {
		slot := *s.Slot
		out.Slot = &slot
	}
	if s.Customer != nil {
		customer := *s.Customer
		out.Customer = &customer
	}
	if s.Pricing != nil {
		pricing := *s.Pricing
		if pricing.Lines != nil {
			pricing.Lines = append([]models.PriceLine(nil), pricing.Lines...)
		}
		out.Pricing = &pricing
	}
	return out
}

func (s *MemorySessionStore) Create(session *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = cloneSession(*session)
	return nil
}

func (s *MemorySessionStore) Get(id string) (*models.BookingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := cloneSession(session)
	return &out, nil
}

func (s *MemorySessionStore) Update(session *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.SessionID]; !ok {
		return ErrSessionNotFound
	}
	s.sessions[session.SessionID] = cloneSession(*session)
	return nil
}

func (s *MemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Transition flips the status under the store lock, so concurrent reclaim
// paths resolve to exactly one winner.
func (s *MemorySessionStore) Transition(id string, from, to models.SessionStatus) (*models.BookingSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, false, ErrSessionNotFound
	}
	if session.Status != from {
		out := cloneSession(session)
		return &out, false, nil
	}
	session.Status = to
	s.sessions[id] = session
	out := cloneSession(session)
	return &out, true, nil
}

func (s *MemorySessionStore) ExpiredBefore(t time.Time) ([]models.BookingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.BookingSession
	for _, session := range s.sessions {
		if session.Status == models.SessionInProgress && t.After(session.ExpiresAt) {
			out = append(out, cloneSession(session))
		}
	}
	return out, nil
}
