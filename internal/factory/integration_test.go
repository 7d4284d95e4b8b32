package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/registration"
)

const (
	phoneAsha  = "9876543210"
	phoneRavi  = "9123456780"
	phoneOther = "9000000000"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(phoneAsha, phoneRavi)
	s.ctx = context.Background()
}

// login runs the full request/verify flow and returns the session token
func (s *IntegrationSuite) login(phone string) string {
	session, err := s.app.LoginService.RequestCode(s.ctx, "", phone)
	s.Require().NoError(err)

	code := s.app.CapturedCodes.LastCode(phone)
	s.Require().NotEmpty(code)

	verified, err := s.app.LoginService.Verify(s.ctx, session.Token, code)
	s.Require().NoError(err)

	return verified.Token
}

// Test: complete flow from login through registration to the notice board
func (s *IntegrationSuite) TestCompleteRegistrationFlow() {
	// Step 1: Asha logs in with a messy rendition of her number
	session, err := s.app.LoginService.RequestCode(s.ctx, "", "+91 98765 43210")
	s.Require().NoError(err)
	s.Equal(phoneAsha, session.Phone)

	code := s.app.CapturedCodes.LastCode(phoneAsha)
	verified, err := s.app.LoginService.Verify(s.ctx, session.Token, code)
	s.Require().NoError(err)

	// Step 2: Submit a registration
	reg, err := s.app.RegistrationService.Submit(s.ctx, verified, registration.Form{
		Name:    "Asha Rao",
		Class:   "5",
		Section: "B",
		Item:    "Solo dance",
		Address: "12 Lake View Road",
		Bus:     "Yes",
	})
	s.Require().NoError(err)
	s.Equal(model.StatusPending, reg.Status)
	s.Equal(phoneAsha, reg.Contact)
	s.Equal(s.app.MockClock.Now(), reg.SubmittedAt)

	// Step 3: The registration is visible to other logged-in users
	regs, err := s.app.RegistrationService.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 1)
	s.Equal("Asha Rao", regs[0].Name)

	// Step 4: Admin posts a notice
	adminSession, err := s.app.LoginService.AuthorizeAdmin(s.ctx, verified.Token, TestAdminPassword)
	s.Require().NoError(err)
	s.True(adminSession.IsAdmin)

	posted, err := s.app.NoticeService.Post(s.ctx, adminSession, "Rehearsal", "Hall A at 4pm", "Admin")
	s.Require().NoError(err)

	// Step 5: Latest notice is the one just posted
	latest, err := s.app.NoticeService.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal(posted.Title, latest.Title)
}

// Test: allow-list changes take effect without a restart
func (s *IntegrationSuite) TestAllowListReloadedPerLogin() {
	_, err := s.app.LoginService.RequestCode(s.ctx, "", phoneOther)
	s.ErrorIs(err, model.ErrNotRegistered)

	// Adding the number makes the next attempt succeed
	s.Require().NoError(s.app.WriteAllowList([]string{phoneAsha, phoneRavi, phoneOther}))

	session, err := s.app.LoginService.RequestCode(s.ctx, "", phoneOther)
	s.Require().NoError(err)
	s.Equal(phoneOther, session.Phone)
}

// Test: sessions expire and get swept
func (s *IntegrationSuite) TestSessionExpiryAndCleanup() {
	token := s.login(phoneAsha)

	s.app.MockClock.Advance(13 * time.Hour)

	_, err := s.app.LoginService.ValidateSession(token)
	s.ErrorIs(err, model.ErrInvalidSession)

	s.app.LoginService.CleanExpiredSessions()

	_, err = s.app.LoginService.ValidateSession(token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

// Test: two users registering concurrently both land in the store
func (s *IntegrationSuite) TestTwoUsersRegister() {
	tokenAsha := s.login(phoneAsha)
	tokenRavi := s.login(phoneRavi)

	sessionAsha, err := s.app.LoginService.ValidateSession(tokenAsha)
	s.Require().NoError(err)
	sessionRavi, err := s.app.LoginService.ValidateSession(tokenRavi)
	s.Require().NoError(err)

	_, err = s.app.RegistrationService.Submit(s.ctx, sessionAsha, registration.Form{
		Name: "Asha Rao", Class: "5", Section: "B", Item: "Solo dance",
	})
	s.Require().NoError(err)

	_, err = s.app.RegistrationService.Submit(s.ctx, sessionRavi, registration.Form{
		Name: "Ravi Kumar", Class: "3", Section: "A", Item: "Recitation",
	})
	s.Require().NoError(err)

	regs, err := s.app.RegistrationService.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(regs, 2)
	s.Equal("Asha Rao", regs[0].Name)
	s.Equal("Ravi Kumar", regs[1].Name)
	s.Equal(phoneRavi, regs[1].Contact)
}

// Test: admin authorization stays with the session it was granted to
func (s *IntegrationSuite) TestAdminScopedToSession() {
	tokenAsha := s.login(phoneAsha)
	tokenRavi := s.login(phoneRavi)

	_, err := s.app.LoginService.AuthorizeAdmin(s.ctx, tokenAsha, TestAdminPassword)
	s.Require().NoError(err)

	sessionRavi, err := s.app.LoginService.ValidateSession(tokenRavi)
	s.Require().NoError(err)
	s.False(sessionRavi.IsAdmin)

	_, err = s.app.NoticeService.Post(s.ctx, sessionRavi, "Nope", "Not allowed", "Ravi")
	s.ErrorIs(err, model.ErrAdminRequired)
}

// Test: factory config validation
func (s *IntegrationSuite) TestFactoryConfigErrors() {
	_, err := New(Config{StorageType: "csv", AllowListPath: "x", AdminPassword: "y"})
	s.Error(err) // missing DataDir

	_, err = New(Config{StorageType: "redis", AllowListPath: "x", AdminPassword: "y"})
	s.Error(err) // missing RedisConfig

	_, err = New(Config{StorageType: "bogus", AllowListPath: "x", AdminPassword: "y"})
	s.Error(err)

	_, err = New(Config{StorageType: "memory", AdminPassword: "y"})
	s.Error(err) // missing AllowListPath

	_, err = New(Config{StorageType: "memory", AllowListPath: "x"})
	s.Error(err) // missing AdminPassword
}
