package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/httpresp"
	"github.com/serenity-aesthetics/salon-api/internal/middleware"
	"github.com/serenity-aesthetics/salon-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listByDate *booking.ListAppointmentsByDate
	confirm    *booking.ConfirmAppointment
	decline    *booking.DeclineAppointment
	cancel     *booking.CancelAppointment
}

func NewAppointmentHandler(
	listByDate *booking.ListAppointmentsByDate,
	confirm *booking.ConfirmAppointment,
	decline *booking.DeclineAppointment,
	cancel *booking.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate: listByDate,
		confirm:    confirm,
		decline:    decline,
		cancel:     cancel,
	}
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "The date must look like YYYY-MM-DD.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The appointment id is not valid.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), staffID, uint(id))
	if err != nil {
		mapStatusChangeErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DECLINE
// ======================================================

func (h *AppointmentHandler) Decline(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The appointment id is not valid.")
		return
	}

	ap, err := h.decline.Execute(c.Request.Context(), staffID, uint(id))
	if err != nil {
		mapStatusChangeErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "The appointment id is not valid.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), staffID, uint(id))
	if err != nil {
		mapStatusChangeErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func mapStatusChangeErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "The appointment does not exist.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The appointment is not in a state that allows this change.")
	default:
		httperr.Internal(c, "failed_to_update_appointment", "Could not update the appointment.")
	}
}
