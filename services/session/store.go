package session

import (
	"context"
	"sync"

	"roombook/models"
)

// SessionStore keeps one BookingSession per user. Sessions never expire.
type SessionStore interface {
	// Get returns the stored session, or a fresh idle one.
	Get(ctx context.Context, userID int64) (*models.BookingSession, error)
	Save(ctx context.Context, s *models.BookingSession) error
}

type MemoryStore struct {
	mu sync.Mutex
	m  map[int64]models.BookingSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[int64]models.BookingSession)}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[userID]
	if !ok {
		return models.NewBookingSession(userID), nil
	}
	return &st, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.UserID] = *sess
	return nil
}
