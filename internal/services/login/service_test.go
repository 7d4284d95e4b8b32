package login

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sgs-events/eventdesk/internal/allowlist"
	"github.com/sgs-events/eventdesk/internal/delivery"
	"github.com/sgs-events/eventdesk/internal/dependencies/mocks"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/admin"
	"github.com/sgs-events/eventdesk/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	delivery *delivery.Capture
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	listPath := filepath.Join(s.T().TempDir(), "allowed_users.csv")
	err := os.WriteFile(listPath, []byte("mobile_number,student_name\n9876543210,Asha\n9123456780,Ravi\n"), 0o644)
	s.Require().NoError(err)

	gate, err := admin.New("sgs2025")
	s.Require().NoError(err)

	s.clock = mocks.NewMockClock(time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.delivery = delivery.NewCapture()
	s.service = New(
		allowlist.New(listPath, testutil.NopLogger()),
		gate,
		s.delivery,
		s.clock,
		s.random,
		DefaultConfig(),
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

// login walks a session through request + verify with the code "123456"
func (s *ServiceSuite) login(phone string) *Session {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", phone)
	s.Require().NoError(err)

	session, err = s.service.Verify(s.ctx, session.Token, "123456")
	s.Require().NoError(err)
	return session
}

// RequestCode tests

func (s *ServiceSuite) TestRequestCodeForAllowListedPhone() {
	s.random.QueueDigits("482913")

	session, err := s.service.RequestCode(s.ctx, "", "+91 98765 43210")
	s.Require().NoError(err)

	s.Equal(StateCodeIssued, session.State)
	s.Equal("9876543210", session.Phone)
	s.NotEmpty(session.Token)
	s.Equal("482913", s.delivery.LastCode("9876543210"))
}

func (s *ServiceSuite) TestRequestCodeRejectsUnknownPhone() {
	session, err := s.service.RequestCode(s.ctx, "", "5555555555")
	s.ErrorIs(err, model.ErrNotRegistered)
	s.Nil(session)
	s.Zero(s.delivery.SentCount())
}

func (s *ServiceSuite) TestRequestCodeAgainOverwritesPendingCode() {
	s.random.QueueDigits("111111", "222222")

	first, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	second, err := s.service.RequestCode(s.ctx, first.Token, "9876543210")
	s.Require().NoError(err)
	s.Equal(first.Token, second.Token)

	// The old code is implicitly invalid now
	_, err = s.service.Verify(s.ctx, second.Token, "111111")
	s.ErrorIs(err, model.ErrWrongCode)

	verified, err := s.service.Verify(s.ctx, second.Token, "222222")
	s.Require().NoError(err)
	s.Equal(StateAuthenticated, verified.State)
}

// Verify tests

func (s *ServiceSuite) TestVerifyCorrectCodeAuthenticates() {
	session := s.login("+91 98765 43210")
	s.Equal(StateAuthenticated, session.State)
	s.Equal("9876543210", session.Phone)
}

func (s *ServiceSuite) TestVerifyWrongCodeStaysCodeIssued() {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	_, err = s.service.Verify(s.ctx, session.Token, "654321")
	s.ErrorIs(err, model.ErrWrongCode)

	current, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(StateCodeIssued, current.State)
}

func (s *ServiceSuite) TestVerifyRetryWithSameCodeSucceeds() {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	_, err = s.service.Verify(s.ctx, session.Token, "000001")
	s.ErrorIs(err, model.ErrWrongCode)

	verified, err := s.service.Verify(s.ctx, session.Token, "123456")
	s.Require().NoError(err)
	s.Equal(StateAuthenticated, verified.State)
}

func (s *ServiceSuite) TestVerifiedCodeIsOneShot() {
	session := s.login("9876543210")

	_, err := s.service.Verify(s.ctx, session.Token, "123456")
	s.ErrorIs(err, model.ErrNoPendingCode)
}

func (s *ServiceSuite) TestVerifyUnknownTokenFails() {
	_, err := s.service.Verify(s.ctx, "sess_nope", "123456")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestVerifyLocksAfterMaxAttempts() {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	for i := 0; i < DefaultConfig().MaxAttempts; i++ {
		_, err = s.service.Verify(s.ctx, session.Token, "999999")
		s.ErrorIs(err, model.ErrWrongCode)
	}

	// Locked now, even with the correct code
	_, err = s.service.Verify(s.ctx, session.Token, "123456")
	s.ErrorIs(err, model.ErrTooManyAttempts)

	// The pending code survives the lockout
	s.clock.Advance(DefaultConfig().LockoutWindow + time.Minute)
	verified, err := s.service.Verify(s.ctx, session.Token, "123456")
	s.Require().NoError(err)
	s.Equal(StateAuthenticated, verified.State)
}

// Session lifecycle tests

func (s *ServiceSuite) TestValidateSessionAfterLogin() {
	session := s.login("9876543210")

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(StateAuthenticated, validated.State)
	s.Equal("9876543210", validated.Phone)
}

func (s *ServiceSuite) TestValidateSessionExpires() {
	session := s.login("9876543210")

	s.clock.Advance(13 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutDestroysSession() {
	session := s.login("9876543210")

	s.service.Logout(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutBeforeVerifyDestroysPendingCode() {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	s.service.Logout(session.Token)

	_, err = s.service.Verify(s.ctx, session.Token, "123456")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	session := s.login("9876543210")

	s.clock.Advance(13 * time.Hour)
	s.service.CleanExpiredSessions()

	s.service.mu.RLock()
	_, ok := s.service.sessions[session.Token]
	s.service.mu.RUnlock()
	s.False(ok)
}

// Admin authorization tests

func (s *ServiceSuite) TestAuthorizeAdminSucceeds() {
	session := s.login("9876543210")

	upgraded, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "sgs2025")
	s.Require().NoError(err)
	s.True(upgraded.IsAdmin)
}

func (s *ServiceSuite) TestAuthorizeAdminIsSessionScoped() {
	session := s.login("9876543210")

	_, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "sgs2025")
	s.Require().NoError(err)

	// Still admin on subsequent validation, no password re-entry
	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.True(validated.IsAdmin)
}

func (s *ServiceSuite) TestAuthorizeAdminWrongPassword() {
	session := s.login("9876543210")

	_, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "wrong")
	s.ErrorIs(err, model.ErrWrongAdminPassword)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.False(validated.IsAdmin)
}

func (s *ServiceSuite) TestAuthorizeAdminRequiresAuthentication() {
	s.random.QueueDigits("123456")
	session, err := s.service.RequestCode(s.ctx, "", "9876543210")
	s.Require().NoError(err)

	_, err = s.service.AuthorizeAdmin(s.ctx, session.Token, "sgs2025")
	s.ErrorIs(err, model.ErrUnauthenticated)
}

func (s *ServiceSuite) TestAuthorizeAdminLocksAfterMaxAttempts() {
	session := s.login("9876543210")

	for i := 0; i < DefaultConfig().MaxAttempts; i++ {
		_, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "wrong")
		s.ErrorIs(err, model.ErrWrongAdminPassword)
	}

	_, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "sgs2025")
	s.ErrorIs(err, model.ErrTooManyAttempts)

	s.clock.Advance(DefaultConfig().LockoutWindow + time.Minute)
	upgraded, err := s.service.AuthorizeAdmin(s.ctx, session.Token, "sgs2025")
	s.Require().NoError(err)
	s.True(upgraded.IsAdmin)
}
