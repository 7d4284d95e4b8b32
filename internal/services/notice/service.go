// Package notice implements the notice board: an open read path for
// logged-in users and an admin-gated write path.
package notice

import (
	"context"
	"log/slog"

	"github.com/sgs-events/eventdesk/internal/dependencies/clock"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/storage"
)

// Service handles reading and posting notices
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new notice Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// List returns all notices oldest-first. An empty board is an empty
// slice, not an error.
func (s *Service) List(ctx context.Context) ([]*model.Notice, error) {
	return s.storage.ListNotices(ctx)
}

// Latest returns the most recently posted notice, or nil if the board is
// empty. Every call reloads the store, so a just-posted notice is visible
// immediately.
func (s *Service) Latest(ctx context.Context) (*model.Notice, error) {
	notices, err := s.storage.ListNotices(ctx)
	if err != nil {
		return nil, err
	}
	if len(notices) == 0 {
		return nil, nil
	}
	return notices[len(notices)-1], nil
}

// Post appends one notice. The session must carry admin authorization;
// notice contents are not validated.
func (s *Service) Post(ctx context.Context, session *login.Session, title, message, postedBy string) (*model.Notice, error) {
	if session == nil || session.State != login.StateAuthenticated {
		return nil, model.ErrUnauthenticated
	}
	if !session.IsAdmin {
		return nil, model.ErrAdminRequired
	}

	notice := &model.Notice{
		PostedAt: s.clock.Now(),
		Title:    title,
		Message:  message,
		PostedBy: postedBy,
	}

	if err := s.storage.SaveNotice(ctx, notice); err != nil {
		return nil, err
	}

	s.logger.Info("notice posted",
		slog.String("title", notice.Title),
		slog.String("posted_by", notice.PostedBy),
	)

	return notice, nil
}
