//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"immoview/internal/domain/user"
	"immoview/internal/handler/api"
	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/queries"
	"immoview/tests/common/builder"
	"immoview/tests/common/httptest"
	"immoview/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeAvailabilityCommands struct {
	createID  uuid.UUID
	createErr error
	updateOK  bool
	updateErr error
	deleteOK  bool

	gotOwnerID uuid.UUID
}

func (f *fakeAvailabilityCommands) CreateWindow(_ context.Context, ownerID uuid.UUID, _ commands.CreateWindowRequest) (uuid.UUID, error) {
	f.gotOwnerID = ownerID
	return f.createID, f.createErr
}

func (f *fakeAvailabilityCommands) UpdateWindow(_ context.Context, _, ownerID uuid.UUID, _ commands.UpdateWindowRequest) (bool, error) {
	f.gotOwnerID = ownerID
	return f.updateOK, f.updateErr
}

func (f *fakeAvailabilityCommands) DeleteWindow(_ context.Context, _, ownerID uuid.UUID) (bool, error) {
	f.gotOwnerID = ownerID
	return f.deleteOK, nil
}

type fakeAvailabilityQueries struct {
	windows []*queries.WindowView
	slots   []*queries.TimeSlotView
	dates   []string
}

func (f *fakeAvailabilityQueries) ListWindows(_ context.Context, _ uuid.UUID, _, _ *time.Time) ([]*queries.WindowView, error) {
	return f.windows, nil
}

func (f *fakeAvailabilityQueries) GenerateTimeSlots(_ context.Context, _ uuid.UUID, _ time.Time) ([]*queries.TimeSlotView, error) {
	return f.slots, nil
}

func (f *fakeAvailabilityQueries) HasAvailabilityForDate(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return len(f.slots) > 0, nil
}

func (f *fakeAvailabilityQueries) AvailableDates(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]string, error) {
	return f.dates, nil
}

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	cmds    *fakeAvailabilityCommands
	queries *fakeAvailabilityQueries
	ownerID uuid.UUID
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.cmds = &fakeAvailabilityCommands{}
	s.queries = &fakeAvailabilityQueries{}
	s.ownerID = uuid.New()
	handler := api.NewAvailabilityHandler(s.cmds, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.ownerID)
		c.Set("user_role", user.RoleOwner)
		c.Next()
	}

	s.router.POST("/availability/windows", authMiddleware, handler.CreateWindow)
	s.router.GET("/availability/windows", authMiddleware, handler.ListWindows)
	s.router.PATCH("/availability/windows/:id", authMiddleware, handler.UpdateWindow)
	s.router.DELETE("/availability/windows/:id", authMiddleware, handler.DeleteWindow)
	s.router.GET("/owners/:ownerId/time-slots", handler.OwnerTimeSlots)
	s.router.GET("/owners/:ownerId/available-dates", handler.OwnerAvailableDates)
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestCreateWindow() {
	url := "/availability/windows"
	reqBody := builder.NewWindowBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 with the new id", func() {
		s.cmds.createID = uuid.New()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.cmds.createID.String(), body["id"])
		s.Equal(s.ownerID, s.cmds.gotOwnerID, "owner comes from the token, not the body")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 on malformed date", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("date", "14.09.2026"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date format")
	})

	s.Run("error: 400 on missing start_time", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("start_time", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 when the window is rejected", func() {
		s.cmds.createErr = commands.ErrWindowValidation
		defer func() { s.cmds.createErr = nil }()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestListWindows() {
	s.queries.windows = []*queries.WindowView{
		builder.NewWindowBuilder().BuildView(),
		builder.NewWindowBuilder().BuildView(),
	}

	s.Run("success: returns the owner's windows", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/windows", nil, "token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})

	s.Run("error: 400 on malformed range bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/windows?start_date=tomorrow", nil, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestUpdateWindow() {
	windowID := uuid.New()
	url := "/availability/windows/" + windowID.String()
	reqBody := builder.NewWindowBuilder().BuildUpdateRequestDTO()

	s.Run("success: returns 200", func() {
		s.cmds.updateOK = true
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 404 when nothing matched", func() {
		s.cmds.updateOK = false
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 400 on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/availability/windows/not-a-uuid", reqBody, "token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestDeleteWindow() {
	windowID := uuid.New()
	url := "/availability/windows/" + windowID.String()

	s.Run("success: returns 204", func() {
		s.cmds.deleteOK = true
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when nothing matched", func() {
		s.cmds.deleteOK = false
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestOwnerTimeSlots() {
	ownerID := uuid.New()
	s.queries.slots = []*queries.TimeSlotView{
		{StartTime: "09:00", EndTime: "09:30", Available: true},
		{StartTime: "09:30", EndTime: "10:00", Available: false},
	}

	s.Run("success: public endpoint returns marked slots", func() {
		url := "/owners/" + ownerID.String() + "/time-slots?date=2026-09-14"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal(true, body[0]["isAvailable"])
		s.Equal(false, body[1]["isAvailable"])
	})

	s.Run("error: 400 without date", func() {
		url := "/owners/" + ownerID.String() + "/time-slots"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestOwnerAvailableDates() {
	ownerID := uuid.New()
	s.queries.dates = []string{"2026-09-14", "2026-09-16"}

	s.Run("success: returns the date list", func() {
		url := "/owners/" + ownerID.String() + "/available-dates?start_date=2026-09-14&end_date=2026-09-20"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body map[string][]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]string{"2026-09-14", "2026-09-16"}, body["dates"])
	})

	s.Run("error: 400 without range", func() {
		url := "/owners/" + ownerID.String() + "/available-dates"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
