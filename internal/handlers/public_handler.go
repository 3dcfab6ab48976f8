package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/serenity-aesthetics/salon-api/internal/cache"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/httpresp"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	listServices  *booking.ListServices
	availability  *booking.GetAvailability
	createBooking *booking.CreateBooking
	cache         *cache.Cache
}

func NewPublicHandler(
	listServices *booking.ListServices,
	availability *booking.GetAvailability,
	createBooking *booking.CreateBooking,
	c *cache.Cache,
) *PublicHandler {
	return &PublicHandler{
		listServices:  listServices,
		availability:  availability,
		createBooking: createBooking,
		cache:         c,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CreateBookingRequest struct {
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`

	ServiceName     string `json:"service_name"`
	AppointmentTime string `json:"appointment_time"` // ISO 8601

	Notes      string `json:"notes"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type CreateBookingResponse struct {
	Message       string `json:"message"`
	AppointmentID uint   `json:"appointment_id"`
	Reference     string `json:"reference"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	filter := domain.ServiceFilter{
		Category:   c.Query("category"),
		Query:      c.Query("query"),
		OnlyActive: true,
	}

	// Unfiltered catalog listing is the hot path; serve it from redis
	// when possible.
	cacheable := filter.Category == "" && filter.Query == ""

	if cacheable {
		var cached []models.Service
		if h.cache.GetJSON(c.Request.Context(), cache.ServicesKey, &cached) {
			httpresp.List(c, cached)
			return
		}
	}

	services, err := h.listServices.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load the service catalog.")
		return
	}

	if cacheable {
		h.cache.SetJSON(c.Request.Context(), cache.ServicesKey, services)
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "The date query parameter is required.")
		return
	}

	day, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{Date: dateStr},
	)

	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "The date must look like YYYY-MM-DD.")
			return
		}

		httperr.Internal(c, "availability_failed", "Could not compute available times.")
		return
	}

	httpresp.OK(c, day)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "The request body is not valid JSON.")
		return
	}

	ap, err := h.createBooking.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			ClientFirstName: req.ClientFirstName,
			ClientLastName:  req.ClientLastName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			Address:         req.Address,
			City:            req.City,
			PostalCode:      req.PostalCode,
			ServiceName:     req.ServiceName,
			AppointmentTime: req.AppointmentTime,
			Notes:           req.Notes,
		},
	)

	if err != nil {
		mapCreateBookingErrors(c, err)
		return
	}

	httpresp.Created(c, CreateBookingResponse{
		Message:       "Appointment requested. We will confirm it shortly.",
		AppointmentID: ap.ID,
		Reference:     ap.Reference,
	})
}

// mapCreateBookingErrors turns use-case errors into HTTP responses. Business
// codes get specific messages; anything else is an opaque 500.
func mapCreateBookingErrors(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)

	switch code {
	case "missing_client_first_name",
		"missing_client_last_name",
		"missing_client_email",
		"missing_client_phone",
		"missing_service_name",
		"missing_appointment_time":
		httperr.BadRequest(c, code, "Missing required field: "+code[len("missing_"):]+".")

	case "invalid_client_email":
		httperr.BadRequest(c, code, "The client email address is not valid.")

	case "invalid_appointment_time":
		httperr.BadRequest(c, code, "The appointment time could not be parsed.")

	case "service_not_found":
		httperr.BadRequest(c, code, "The requested service does not exist.")

	case "slot_unavailable":
		httperr.Conflict(c, code, "That time slot was just taken. Pick another one.")

	default:
		httperr.Internal(c, "failed_to_create_booking", "Could not create the appointment.")
	}
}
