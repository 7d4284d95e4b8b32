// Package registration implements the registration workflow: an
// authenticated append to the registration store. Beyond requiring a
// login there is deliberately no field validation; the form accepts
// whatever the parent typed, and review happens later on the sheet.
package registration

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sgs-events/eventdesk/internal/dependencies/clock"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/storage"
)

// Form holds the submitted registration fields
type Form struct {
	Name    string
	Class   string
	Section string
	Item    string
	Contact string // if empty, pre-filled from the session phone
	Address string
	Bus     string
}

// Service handles registration submissions and listing
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registration Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Submit appends one registration. The session must be authenticated.
// The contact defaults to the session's phone but a user-edited value is
// accepted as-is. Duplicate submissions create duplicate rows; there is
// no uniqueness constraint.
func (s *Service) Submit(ctx context.Context, session *login.Session, form Form) (*model.Registration, error) {
	if session == nil || session.State != login.StateAuthenticated {
		return nil, model.ErrUnauthenticated
	}

	contact := form.Contact
	if contact == "" {
		contact = session.Phone
	}

	reg := &model.Registration{
		SubmittedAt: s.clock.Now(),
		Name:        form.Name,
		Class:       form.Class,
		Section:     form.Section,
		Item:        form.Item,
		Contact:     contact,
		Address:     form.Address,
		Bus:         form.Bus,
		Status:      model.StatusPending,
	}

	if err := s.storage.SaveRegistration(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("registration submitted",
		slog.String("name", reg.Name),
		slog.String("item", reg.Item),
	)

	return reg, nil
}

// List returns all registrations in submission order
func (s *Service) List(ctx context.Context) ([]*model.Registration, error) {
	return s.storage.ListRegistrations(ctx)
}

// Export streams the registration list as CSV, headered with the same
// columns as the durable store, for the spreadsheet export action.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	regs, err := s.storage.ListRegistrations(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "Name", "Class", "Section", "Item", "Contact", "Address", "Bus", "Status"}); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, reg := range regs {
		row := []string{
			reg.SubmittedAt.Format(time.RFC3339),
			reg.Name,
			reg.Class,
			reg.Section,
			reg.Item,
			reg.Contact,
			reg.Address,
			reg.Bus,
			string(reg.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
