package storage

import (
	"context"

	"github.com/sgs-events/eventdesk/internal/model"
)

// Storage defines the interface for the append-only record stores.
// Both stores preserve insertion order; list operations return rows
// oldest-first and an empty slice (not an error) for an empty store.
type Storage interface {
	// Registration operations
	SaveRegistration(ctx context.Context, reg *model.Registration) error
	ListRegistrations(ctx context.Context) ([]*model.Registration, error)

	// Notice operations
	SaveNotice(ctx context.Context, notice *model.Notice) error
	ListNotices(ctx context.Context) ([]*model.Notice, error)
}
