package notice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sgs-events/eventdesk/internal/dependencies/mocks"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/login"
	"github.com/sgs-events/eventdesk/internal/storage/memory"
	"github.com/sgs-events/eventdesk/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func adminSession() *login.Session {
	return &login.Session{
		Token:   "sess_admin",
		State:   login.StateAuthenticated,
		Phone:   "9876543210",
		IsAdmin: true,
	}
}

func (s *ServiceSuite) TestListEmptyBoard() {
	notices, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(notices)
}

func (s *ServiceSuite) TestLatestEmptyBoardIsNil() {
	latest, err := s.service.Latest(s.ctx)
	s.Require().NoError(err)
	s.Nil(latest)
}

func (s *ServiceSuite) TestPostAndList() {
	posted, err := s.service.Post(s.ctx, adminSession(), "Rehearsal", "4pm in the main hall", "Admin")
	s.Require().NoError(err)
	s.True(posted.PostedAt.Equal(s.clock.CurrentTime))

	notices, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(notices, 1)
	s.Equal("Rehearsal", notices[0].Title)
}

func (s *ServiceSuite) TestPostIsVisibleToNextRead() {
	_, err := s.service.Post(s.ctx, adminSession(), "first", "m", "Admin")
	s.Require().NoError(err)

	latest, err := s.service.Latest(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(latest)
	s.Equal("first", latest.Title)
}

func (s *ServiceSuite) TestLatestIsLastPosted() {
	for _, title := range []string{"first", "second", "third"} {
		_, err := s.service.Post(s.ctx, adminSession(), title, "m", "Admin")
		s.Require().NoError(err)
	}

	latest, err := s.service.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal("third", latest.Title)
}

func (s *ServiceSuite) TestPostRequiresAdmin() {
	authed := &login.Session{Token: "sess_user", State: login.StateAuthenticated, Phone: "9123456780"}

	_, err := s.service.Post(s.ctx, authed, "t", "m", "p")
	s.ErrorIs(err, model.ErrAdminRequired)

	notices, _ := s.service.List(s.ctx)
	s.Empty(notices)
}

func (s *ServiceSuite) TestPostRequiresAuthentication() {
	_, err := s.service.Post(s.ctx, nil, "t", "m", "p")
	s.ErrorIs(err, model.ErrUnauthenticated)
}

func (s *ServiceSuite) TestPostAcceptsEmptyFields() {
	notice, err := s.service.Post(s.ctx, adminSession(), "", "", "")
	s.Require().NoError(err)
	s.Empty(notice.Title)
}
