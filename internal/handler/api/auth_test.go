//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"stamp-rally/internal/domain/session"
	"stamp-rally/internal/handler/api"
	resdto "stamp-rally/internal/handler/dto/response"
	"stamp-rally/internal/pkg/config"
	"stamp-rally/internal/pkg/cookie"
	"stamp-rally/internal/pkg/errs"
	"stamp-rally/internal/usecase/commands"
	"stamp-rally/internal/usecase/readmodel"
	"stamp-rally/tests/common/builder"
	"stamp-rally/tests/common/httptest"
	"stamp-rally/tests/common/testutil"
	commandsmock "stamp-rally/tests/mock/commands"
	queriesmock "stamp-rally/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	sess         session.Session
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.sess = session.Session{GuestID: guestSession.GuestID, Token: "token", UserID: "42"}

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	h := api.NewAuthHandler(s.mockCommands, s.mockQueries, config.NewTestConfig())

	s.router.Use(withSession(&s.sess))
	s.router.POST("/auth/signup", h.Signup)
	s.router.POST("/auth/login", h.Login)
	s.router.POST("/auth/logout", h.Logout)
	s.router.GET("/auth/me", h.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()
	user := builder.NewUserBuilder()

	s.Run("success: returns the user and sets the access cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Username, reqBody.Password).
			Return(user.BuildLoginResult("jwt-token"), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var res resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("jwt-token", res.AccessToken)
		s.Equal(user.Username, res.User.Username)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("jwt-token", access.Value)
		s.True(access.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "missing field: username (required)", mutate: testutil.Field("username", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty username", mutate: testutil.Field("username", ""), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  errs.Mark(errors.New("401"), commands.ErrInvalidCredentials),
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid username or password",
			},
			{
				name:           "auth service down",
				commandsError:  errs.Mark(errors.New("503"), errs.ErrRemoteUnavailable),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Login failed",
			},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Username, reqBody.Password).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.Nil(httptest.ExtractCookie(rec, cookie.AccessTokenCookieName))
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestSignup() {
	url := "/auth/signup"
	reqBody := builder.NewAuthBuilder().BuildSignupDTO()

	s.Run("success: returns 201 with the created user", func() {
		s.mockCommands.EXPECT().Signup(gomock.Any(), readmodel.SignupInput{
			Username: reqBody.Username, Email: reqBody.Email, Password: reqBody.Password,
		}).Return(builder.NewUserBuilder().BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var res resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(42, res.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", "1234567"), expectCode: http.StatusBadRequest},
			{name: "missing field: username (required)", mutate: testutil.Field("username", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request format")
			})
		}
	})

	s.Run("error: auth service reason is passed through", func() {
		rejected := errs.WithUserMessage(errs.Mark(errors.New("400"), commands.ErrInvalidSignup), "A user with that username already exists.")
		s.mockCommands.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(nil, rejected).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "already exists")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears stored data and both cookies", func() {
		s.mockCommands.EXPECT().Logout(gomock.Any(), s.sess).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)

		for _, name := range []string{cookie.AccessTokenCookieName, cookie.GuestSessionCookieName} {
			httptest.AssertCookieCleared(s.T(), rec, name)
		}
	})

	s.Run("error: storage failure is reported", func() {
		s.mockCommands.EXPECT().Logout(gomock.Any(), s.sess).
			Return(errs.Mark(errors.New("redis down"), errs.ErrStorageFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Logout failed")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user", func() {
		s.mockQueries.EXPECT().Me(gomock.Any(), s.sess).Return(builder.NewUserBuilder().BuildReadModel(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var res resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("walker@example.com", res.Email)
	})

	s.Run("error: rejected token returns 401 and clears the cookie", func() {
		s.mockQueries.EXPECT().Me(gomock.Any(), s.sess).
			Return(nil, errs.Mark(errors.New("401"), errs.ErrAuthExpired)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")

		httptest.AssertCookieCleared(s.T(), rec, cookie.AccessTokenCookieName)
	})
}
