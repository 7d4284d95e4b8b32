package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/sgs-events/eventdesk/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Registration tests

func (s *StorageSuite) TestSaveAndListRegistrations() {
	reg := &model.Registration{
		SubmittedAt: time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC),
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
	s.True(regs[0].SubmittedAt.Equal(reg.SubmittedAt))
}

func (s *StorageSuite) TestListRegistrationsEmpty() {
	regs, err := s.storage.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Empty(regs)
}

func (s *StorageSuite) TestRegistrationsPreserveInsertionOrder() {
	for _, name := range []string{"first", "second", "third"} {
		err := s.storage.SaveRegistration(s.ctx, &model.Registration{Name: name, SubmittedAt: time.Now()})
		s.Require().NoError(err)
	}

	regs, err := s.storage.ListRegistrations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 3)
	s.Equal("first", regs[0].Name)
	s.Equal("third", regs[2].Name)
}

func (s *StorageSuite) TestCorruptRegistrationEntry() {
	s.mini.RPush(registrationsKey(), "{not valid json")

	_, err := s.storage.ListRegistrations(s.ctx)
	s.ErrorIs(err, model.ErrStoreCorrupt)
}

// Notice tests

func (s *StorageSuite) TestSaveAndListNotices() {
	notice := &model.Notice{
		PostedAt: time.Date(2025, 2, 14, 9, 0, 0, 0, time.UTC),
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
	s.Equal("Admin", notices[0].PostedBy)
}

func (s *StorageSuite) TestListNoticesEmpty() {
	notices, err := s.storage.ListNotices(s.ctx)
	s.Require().NoError(err)
	s.Empty(notices)
}

func (s *StorageSuite) TestUnreachableServerIsStoreUnavailable() {
	s.mini.Close()

	_, err := s.storage.ListNotices(s.ctx)
	s.ErrorIs(err, model.ErrStoreUnavailable)
}
