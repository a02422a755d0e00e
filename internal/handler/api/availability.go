package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "immoview/internal/handler/dto/request"
	resdto "immoview/internal/handler/dto/response"
	"immoview/internal/handler/httperr"
	"immoview/internal/handler/middleware"
	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary Create availability window
// @Description Create a new availability window for the authenticated owner
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateWindowRequest true "Create window request"
// @Success 201 {object} resdto.WindowCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /availability/windows [post]
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	var req reqdto.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	id, err := h.cmds.CreateWindow(c.Request.Context(), ownerID, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrWindowValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid availability window", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create window", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.WindowCreatedResponse{ID: id})
}

// @Summary List availability windows
// @Description List the authenticated owner's availability windows, optionally bounded by a date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.WindowResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /availability/windows [get]
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	from, err := optionalDate(c, "start_date")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start_date", nil)
		return
	}
	to, err := optionalDate(c, "end_date")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end_date", nil)
		return
	}

	views, err := h.q.ListWindows(c.Request.Context(), ownerID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list windows", nil)
		return
	}

	out := make([]*resdto.WindowResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromWindowView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Update availability window
// @Description Update an availability window owned by the authenticated owner
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Window ID"
// @Param request body reqdto.UpdateWindowRequest true "Update window request"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/windows/{id} [patch]
func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid window id", nil)
		return
	}

	var req reqdto.UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	updated, err := h.cmds.UpdateWindow(c.Request.Context(), windowID, ownerID, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrWindowValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid availability window", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update window", nil)
		return
	}
	if !updated {
		httperr.AbortWithError(c, http.StatusNotFound, nil, "Window not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// @Summary Delete availability window
// @Description Delete an availability window owned by the authenticated owner
// @Tags availability
// @Security BearerAuth
// @Param id path string true "Window ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/windows/{id} [delete]
func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	windowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid window id", nil)
		return
	}

	deleted, err := h.cmds.DeleteWindow(c.Request.Context(), windowID, ownerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to delete window", nil)
		return
	}
	if !deleted {
		httperr.AbortWithError(c, http.StatusNotFound, nil, "Window not found", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Owner time slots
// @Description Generate bookable time slots for an owner on a given date
// @Tags availability
// @Produce json
// @Param ownerId path string true "Owner ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.TimeSlotResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{ownerId}/time-slots [get]
func (h *AvailabilityHandler) OwnerTimeSlots(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid owner id", nil)
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	slots, err := h.q.GenerateTimeSlots(c.Request.Context(), ownerID, date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to generate time slots", nil)
		return
	}

	out := make([]*resdto.TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, resdto.FromTimeSlotView(s))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Owner available dates
// @Description List dates within a range on which an owner has at least one active window
// @Tags availability
// @Produce json
// @Param ownerId path string true "Owner ID"
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailableDatesResponse
// @Failure 400 {object} map[string]string
// @Router /owners/{ownerId}/available-dates [get]
func (h *AvailabilityHandler) OwnerAvailableDates(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid owner id", nil)
		return
	}

	from, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start_date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end_date, expected YYYY-MM-DD", nil)
		return
	}

	dates, err := h.q.AvailableDates(c.Request.Context(), ownerID, from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list available dates", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{Dates: dates})
}

func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
