package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/meveto/meveto-go-sdk/authenticator"
	"github.com/meveto/meveto-go-sdk/models"
	"github.com/meveto/meveto-go-sdk/repositories"
	"github.com/meveto/meveto-go-sdk/repositories/mocks"
)

// recordingObserver captures directory and webhook outcomes
type recordingObserver struct {
	directory []string
	webhooks  []string
}

func (o *recordingObserver) RecordDirectoryOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	o.directory = append(o.directory, operation+":"+status)
}

func (o *recordingObserver) RecordWebhookEvent(eventType, status string) {
	o.webhooks = append(o.webhooks, eventType+":"+status)
}

// SessionServiceTestSuite is a test suite for the session service
type SessionServiceTestSuite struct {
	suite.Suite
	provider     *fakeProvider
	mockUserRepo *mocks.MockUserRepository
	observer     *recordingObserver
	service      SessionService
}

// SetupTest sets up the test suite before each test
func (suite *SessionServiceTestSuite) SetupTest() {
	suite.provider = newFakeProvider(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepository(suite.T())
	suite.observer = &recordingObserver{}

	suite.service = NewSessionService(
		suite.provider.factory(),
		suite.mockUserRepo,
		WithSessionObserver(suite.observer),
	)
}

// TestStartLogin_ReturnsAuthorizationURL tests the login redirect URL carries the state
func (suite *SessionServiceTestSuite) TestStartLogin_ReturnsAuthorizationURL() {
	state := strings.Repeat("q", 130)

	loginURL, err := suite.service.StartLogin(state, "", "share-1")

	require.NoError(suite.T(), err)
	parsed, err := url.Parse(loginURL)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), state, parsed.Query().Get("state"))
	assert.Equal(suite.T(), "share-1", parsed.Query().Get("sharing_token"))
	assert.Equal(suite.T(), "code", parsed.Query().Get("response_type"))
}

// TestStartLogin_StateTooShort tests that a short state is rejected
func (suite *SessionServiceTestSuite) TestStartLogin_StateTooShort() {
	_, err := suite.service.StartLogin("abc", "", "")

	assert.ErrorIs(suite.T(), err, authenticator.ErrStateTooShort)
}

// TestCompleteLogin_RecordsProviderUser tests the login is recorded under the Meveto user id
func (suite *SessionServiceTestSuite) TestCompleteLogin_RecordsProviderUser() {
	suite.mockUserRepo.EXPECT().RecordLogin(mock.Anything, testMevetoUser).Return(nil)

	result, err := suite.service.CompleteLogin(context.Background(), "good-code")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), testMevetoUser, result.UserID)
	assert.Equal(suite.T(), testAccessToken, result.Token.AccessToken())
	assert.Equal(suite.T(), "jane@example.com", result.Payload["email"])
	assert.Equal(suite.T(), []string{"login:success"}, suite.observer.directory)
}

// TestCompleteLogin_ExchangeFailure tests that no login is recorded when the exchange fails
func (suite *SessionServiceTestSuite) TestCompleteLogin_ExchangeFailure() {
	result, err := suite.service.CompleteLogin(context.Background(), "bad-client")

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, authenticator.ErrClientNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "RecordLogin", mock.Anything, mock.Anything)
}

// TestCompleteLogin_DirectoryFailure tests that directory errors are wrapped
func (suite *SessionServiceTestSuite) TestCompleteLogin_DirectoryFailure() {
	dbErr := errors.New("database is locked")
	suite.mockUserRepo.EXPECT().RecordLogin(mock.Anything, testMevetoUser).Return(dbErr)

	_, err := suite.service.CompleteLogin(context.Background(), "good-code")

	assert.ErrorIs(suite.T(), err, dbErr)
	assert.Contains(suite.T(), err.Error(), "failed to record login")
	assert.Equal(suite.T(), []string{"login:error"}, suite.observer.directory)
}

// TestLogout_UnknownUser tests that logging out an unknown user fails
func (suite *SessionServiceTestSuite) TestLogout_UnknownUser() {
	suite.mockUserRepo.EXPECT().RecordLogout(mock.Anything, "ghost").Return(repositories.ErrUserNotFound)

	err := suite.service.Logout(context.Background(), "ghost")

	assert.ErrorIs(suite.T(), err, repositories.ErrUserNotFound)
}

// TestIsLoggedIn_DelegatesToDirectory tests the directory answers login state
func (suite *SessionServiceTestSuite) TestIsLoggedIn_DelegatesToDirectory() {
	suite.mockUserRepo.EXPECT().IsLoggedIn(mock.Anything, "user-1").Return(true, nil)

	loggedIn, err := suite.service.IsLoggedIn(context.Background(), "user-1")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), loggedIn)
}

// TestHandleWebhook_UserLoggedOut tests a logout event marks the resolved user logged out
func (suite *SessionServiceTestSuite) TestHandleWebhook_UserLoggedOut() {
	suite.mockUserRepo.EXPECT().RecordLogout(mock.Anything, testMevetoUser).Return(nil)

	result, err := suite.service.HandleWebhook(context.Background(), models.WebhookEvent{
		Type:       models.EventUserLoggedOut,
		UserToken:  "event-token",
		DeliveryID: "delivery-1",
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Handled)
	assert.Equal(suite.T(), testMevetoUser, result.UserID)
	assert.Equal(suite.T(), "delivery-1", result.DeliveryID)
	assert.Equal(suite.T(), []string{"User_Logged_Out:handled"}, suite.observer.webhooks)
}

// TestHandleWebhook_IgnoresOtherEvents tests unknown events are not acted upon
func (suite *SessionServiceTestSuite) TestHandleWebhook_IgnoresOtherEvents() {
	result, err := suite.service.HandleWebhook(context.Background(), models.WebhookEvent{
		Type:      "User_Logged_In",
		UserToken: "event-token",
	})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.Handled)
	assert.NotEmpty(suite.T(), result.DeliveryID)
	assert.Equal(suite.T(), []string{"User_Logged_In:ignored"}, suite.observer.webhooks)
}

// TestHandleWebhook_InvalidToken tests an invalid user token surfaces the provider message
func (suite *SessionServiceTestSuite) TestHandleWebhook_InvalidToken() {
	result, err := suite.service.HandleWebhook(context.Background(), models.WebhookEvent{
		Type:      models.EventUserLoggedOut,
		UserToken: "stale-token",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, authenticator.ErrClientError)
	assert.Equal(suite.T(), []string{"User_Logged_Out:error"}, suite.observer.webhooks)
}

// TestHandleWebhook_InvalidEvent tests events without a user token never reach the provider
func (suite *SessionServiceTestSuite) TestHandleWebhook_InvalidEvent() {
	result, err := suite.service.HandleWebhook(context.Background(), models.WebhookEvent{
		Type:      models.EventUserLoggedOut,
		UserToken: "  ",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, ErrInvalidWebhookEvent)
	assert.Contains(suite.T(), err.Error(), "User token is required")
	assert.Zero(suite.T(), suite.provider.requests.Load())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "RecordLogout", mock.Anything, mock.Anything)
	assert.Equal(suite.T(), []string{"User_Logged_Out:invalid"}, suite.observer.webhooks)
}

// TestHandleWebhook_MissingType tests events without a type are rejected rather than ignored
func (suite *SessionServiceTestSuite) TestHandleWebhook_MissingType() {
	_, err := suite.service.HandleWebhook(context.Background(), models.WebhookEvent{
		UserToken: "event-token",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidWebhookEvent)
	assert.Zero(suite.T(), suite.provider.requests.Load())
}

// TestSessionServiceTestSuite runs the session service test suite
func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func TestNewServices(t *testing.T) {
	provider := newFakeProvider(t)
	repos := &repositories.Repositories{Users: mocks.NewMockUserRepository(t)}

	srvs := NewServices(repos, provider.factory())

	assert.NotNil(t, srvs.Session)
}
