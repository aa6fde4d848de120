//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"shareit/internal/domain/user"
	"shareit/internal/handler/api"
	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	"shareit/tests/common/testutil"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.UserHandler
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	reqdto.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewUserHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/users", s.handler.Create)
	s.router.GET("/users", s.handler.List)
	s.router.GET("/users/:id", s.handler.Get)
	s.router.PATCH("/users/:id", s.handler.Update)
	s.router.DELETE("/users/:id", s.handler.Delete)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

type testCaseUser struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *UserHandlerTestSuite) TestCreate() {
	url := "/users"

	reqBody := builder.NewUserBuilder().BuildCreateRequestDTO()
	view := builder.NewUserBuilder().WithID(7).BuildView()

	validation := []testCaseUser{
		{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
		{name: "blank name", mutate: testutil.Field("name", "   "), expectCode: http.StatusBadRequest},
		{name: "malformed email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "name too long", mutate: testutil.Field("name", strings.Repeat("a", 256)), expectCode: http.StatusBadRequest},
		{name: "name at limit", mutate: testutil.Field("name", strings.Repeat("a", 255)), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 with the stored user", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), "Test User", "test@example.com").
			Return(&commands.CreateUserResult{UserID: 7}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(7)).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		want := resdto.UserResponse{ID: 7, Name: "Test User", Email: "test@example.com"}
		if diff := cmp.Diff(want, body); diff != "" {
			s.T().Errorf("response mismatch (-want +got):\n%s", diff)
		}
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/users/7"})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(&commands.CreateUserResult{UserID: 7}, nil).Times(1)
					s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(7)).Return(view, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 409 Conflict when the email is taken", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, user.ErrEmailDuplicate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "email already in use")
	})

	s.Run("error: 500 hides unexpected failures", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *UserHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(3)).
			Return(builder.NewUserBuilder().WithID(3).BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/3", nil, "")
		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(3), body.ID)
	})

	s.Run("error: 404 for an unknown user", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, user.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/99", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user not found")
	})

	s.Run("error: 400 for a non-numeric id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *UserHandlerTestSuite) TestList() {
	s.mockQueries.EXPECT().List(gomock.Any()).Return([]*queries.UserView{
		builder.NewUserBuilder().WithID(1).BuildView(),
		builder.NewUserBuilder().WithID(2).WithEmail("second@example.com").BuildView(),
	}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users", nil, "")
	var body []resdto.UserResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
	s.Equal("second@example.com", body[1].Email)
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *UserHandlerTestSuite) TestUpdate() {
	s.Run("success: only supplied fields reach the use case", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, p user.Patch) error {
				s.Nil(p.Email)
				s.Require().NotNil(p.Name)
				s.Equal("Renamed", *p.Name)
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(5)).
			Return(builder.NewUserBuilder().WithID(5).WithName("Renamed").BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/5", map[string]any{"name": "Renamed"}, "")
		var body resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Renamed", body.Name)
	})

	s.Run("error: 400 for a malformed email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/5", map[string]any{"email": "broken"}, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 409 when the new email is taken", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).Return(user.ErrEmailDuplicate).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/5", map[string]any{"email": "taken@example.com"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "email already in use")
	})

	s.Run("error: 404 for an unknown user", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(9), gomock.Any()).Return(user.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/users/9", map[string]any{"name": "x"}, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *UserHandlerTestSuite) TestDelete() {
	s.mockCommands.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/users/4", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(rec.Body.String())
}
