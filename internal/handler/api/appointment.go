package api

import (
	"errors"
	"net/http"
	"time"

	"immoview/internal/domain/user"
	reqdto "immoview/internal/handler/dto/request"
	resdto "immoview/internal/handler/dto/response"
	"immoview/internal/handler/httperr"
	"immoview/internal/handler/middleware"
	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	cmds commands.AppointmentCommands
	q    queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.AppointmentCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{cmds: cmds, q: q}
}

// @Summary Book appointment
// @Description Book a viewing appointment for a property as the authenticated buyer
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Create appointment request"
// @Success 201 {object} resdto.AppointmentCreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.CreateAppointment(c.Request.Context(), buyerID, req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPropertyNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Property not found", nil)
		case errors.Is(err, commands.ErrOwnershipMismatch):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Owner does not match property", nil)
		case errors.Is(err, commands.ErrSlotUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is not available", nil)
		case errors.Is(err, commands.ErrAppointmentValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to book appointment", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.AppointmentCreatedResponse{ID: id})
}

// @Summary Get appointment
// @Description Get an appointment by ID, visible to its participants and admins
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAppointmentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
		case errors.Is(err, queries.ErrAppointmentAccess):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load appointment", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary List own appointments
// @Description List the authenticated user's appointments, as buyer or as owner
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param role query string false "Perspective: buyer or owner (defaults to token role)"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	if q := c.Query("role"); q == "buyer" || q == "owner" {
		role = user.Role(q)
	}

	views, err := h.q.ListByUser(c.Request.Context(), userID, role)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list appointments", nil)
		return
	}

	out := make([]*resdto.AppointmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromAppointmentView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Update appointment status
// @Description Transition an appointment's status as the hosting owner
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentStatusRequest true "Status update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	var req reqdto.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateStatus(c.Request.Context(), id, userID, req.Status, req.Notes); err != nil {
		h.abortWriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update appointment notes
// @Description Update buyer or owner notes on an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentNotesRequest true "Notes update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/notes [patch]
func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	var req reqdto.UpdateAppointmentNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.cmds.UpdateNotes(c.Request.Context(), id, userID, req.NoteType, req.Notes); err != nil {
		h.abortWriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Cancel appointment request
// @Description Delete a still-requested appointment as the buyer who booked it
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment id", nil)
		return
	}

	if err := h.cmds.DeleteAppointment(c.Request.Context(), id, userID); err != nil {
		h.abortWriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List property appointments
// @Description List all appointments for a property, newest first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/appointments [get]
func (h *AppointmentHandler) ListByProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property id", nil)
		return
	}

	views, err := h.q.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list appointments", nil)
		return
	}

	out := make([]*resdto.AppointmentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromAppointmentView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Property time slots
// @Description Generate business-hour viewing slots for a property on a given date
// @Tags appointments
// @Produce json
// @Param id path string true "Property ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.TimeSlotResponse
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/time-slots [get]
func (h *AppointmentHandler) PropertyTimeSlots(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property id", nil)
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	slots, err := h.q.PropertyTimeSlots(c.Request.Context(), propertyID, date)
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

func (h *AppointmentHandler) abortWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrAppointmentNotFoundWrite):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found", nil)
	case errors.Is(err, commands.ErrAppointmentUnauthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, commands.ErrInvalidStatusTransition), errors.Is(err, commands.ErrAppointmentNotDeletable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid appointment state", nil)
	case errors.Is(err, commands.ErrAppointmentValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
