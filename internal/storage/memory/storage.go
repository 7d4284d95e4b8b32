package memory

import (
	"context"
	"sync"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/storage"
)

// Storage is an in-memory implementation of the storage interface, used in
// tests and for throwaway dev runs. Nothing survives a restart.
type Storage struct {
	mu sync.RWMutex

	registrations []*model.Registration
	notices       []*model.Notice
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Registration operations

func (s *Storage) SaveRegistration(ctx context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *reg
	s.registrations = append(s.registrations, &copied)
	return nil
}

func (s *Storage) ListRegistrations(ctx context.Context) ([]*model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Registration, len(s.registrations))
	for i, reg := range s.registrations {
		copied := *reg
		out[i] = &copied
	}
	return out, nil
}

// Notice operations

func (s *Storage) SaveNotice(ctx context.Context, notice *model.Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *notice
	s.notices = append(s.notices, &copied)
	return nil
}

func (s *Storage) ListNotices(ctx context.Context) ([]*model.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Notice, len(s.notices))
	for i, notice := range s.notices {
		copied := *notice
		out[i] = &copied
	}
	return out, nil
}
