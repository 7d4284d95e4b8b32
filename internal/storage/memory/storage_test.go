package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sgs-events/eventdesk/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Registration tests

func (s *StorageSuite) TestSaveAndListRegistrations() {
	reg := &model.Registration{
		SubmittedAt: time.Now(),
		Name:        "Ravi",
		Class:       "8",
		Section:     "A",
		Item:        "Dance",
		Contact:     "9876543210",
		Address:     "X",
		Bus:         "Yes",
		Status:      model.StatusPending,
	}

	err := s.storage.SaveRegistration(s.ctx, reg)
	s.Require().NoError(err)

	regs, err := s.storage.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 1)
	s.Equal("Ravi", regs[0].Name)
	s.Equal(model.StatusPending, regs[0].Status)
}

func (s *StorageSuite) TestListRegistrationsEmpty() {
	regs, err := s.storage.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Empty(regs)
}

func (s *StorageSuite) TestRegistrationsPreserveInsertionOrder() {
	for _, name := range []string{"first", "second", "third"} {
		_ = s.storage.SaveRegistration(s.ctx, &model.Registration{Name: name})
	}

	regs, err := s.storage.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 3)
	s.Equal("first", regs[0].Name)
	s.Equal("second", regs[1].Name)
	s.Equal("third", regs[2].Name)
}

func (s *StorageSuite) TestListReturnsCopies() {
	_ = s.storage.SaveRegistration(s.ctx, &model.Registration{Name: "Ravi"})

	regs, _ := s.storage.ListRegistrations(s.ctx)
	regs[0].Name = "mutated"

	again, _ := s.storage.ListRegistrations(s.ctx)
	s.Equal("Ravi", again[0].Name)
}

// Notice tests

func (s *StorageSuite) TestSaveAndListNotices() {
	notice := &model.Notice{
		PostedAt: time.Now(),
		Title:    "Rehearsal",
		Message:  "4pm in the main hall",
		PostedBy: "Admin",
	}

	err := s.storage.SaveNotice(s.ctx, notice)
	s.Require().NoError(err)

	notices, err := s.storage.ListNotices(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(notices, 1)
	s.Equal("Rehearsal", notices[0].Title)
}

func (s *StorageSuite) TestListNoticesEmpty() {
	notices, err := s.storage.ListNotices(s.ctx)
	s.Require().NoError(err)
	s.Empty(notices)
}
