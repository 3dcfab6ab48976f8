package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	"github.com/serenity-aesthetics/salon-api/internal/cache"
	"github.com/serenity-aesthetics/salon-api/internal/config"
	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
	"github.com/serenity-aesthetics/salon-api/internal/notify"
	"github.com/serenity-aesthetics/salon-api/internal/usecase/booking"
)

// stubRepository backs public endpoint tests with a fixed catalog, a Monday
// morning template and an in-memory appointment list.
type stubRepository struct {
	services     []models.Service
	template     []models.ScheduleSlot
	appointments []models.Appointment
	calls        int
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		services: []models.Service{
			{ID: 1, Name: "Facial", DurationMin: 45, Price: 40, Active: true, Category: "skin"},
			{ID: 2, Name: "Swedish Massage", DurationMin: 60, Price: 55, Active: true, Category: "massage"},
		},
		template: []models.ScheduleSlot{
			{Weekday: 1, TimeOfDay: "09:00", Active: true},
			{Weekday: 1, TimeOfDay: "10:00", Active: true},
			{Weekday: 1, TimeOfDay: "11:00", Active: true},
		},
	}
}

func (s *stubRepository) GetSalon(ctx context.Context) (*models.Salon, error) {
	s.calls++
	return &models.Salon{ID: 1, Name: "Serenity Aesthetics", Timezone: "UTC"}, nil
}

func (s *stubRepository) ListServices(ctx context.Context, f domain.ServiceFilter) ([]models.Service, error) {
	s.calls++
	return s.services, nil
}

func (s *stubRepository) GetServiceByName(ctx context.Context, name string) (*models.Service, error) {
	s.calls++
	for _, svc := range s.services {
		if svc.Name == name {
			out := svc
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (s *stubRepository) UpsertClientByEmail(ctx context.Context, client *models.Client) error {
	s.calls++
	client.ID = 1
	return nil
}

func (s *stubRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.calls++
	ap.ID = uint(len(s.appointments) + 1)
	s.appointments = append(s.appointments, *ap)
	return nil
}

func (s *stubRepository) AssertSlotFree(ctx context.Context, start, end time.Time) error {
	s.calls++
	for _, ap := range s.appointments {
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	return nil
}

func (s *stubRepository) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	s.calls++
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (s *stubRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.calls++
	return nil
}

func (s *stubRepository) ListTemplateSlots(ctx context.Context, weekday int) ([]models.ScheduleSlot, error) {
	s.calls++
	var out []models.ScheduleSlot
	for _, slot := range s.template {
		if slot.Weekday == weekday {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *stubRepository) ListBookedStartTimes(ctx context.Context, dayStart, dayEnd time.Time) ([]time.Time, error) {
	s.calls++
	var out []time.Time
	for _, ap := range s.appointments {
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, ap.StartTime)
		}
	}
	return out, nil
}

func (s *stubRepository) ListAppointmentsForDay(ctx context.Context, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	s.calls++
	return s.appointments, nil
}

func (s *stubRepository) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(s)
}

var _ domain.Repository = (*stubRepository)(nil)

type noopNotifier struct{}

func (noopNotifier) Dispatch(notify.BookingNotice) {}

type noopAudit struct{}

func (noopAudit) Dispatch(audit.Event) {}

func newPublicRouter(repo *stubRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPublicHandler(
		booking.NewListServices(repo),
		booking.NewGetAvailability(repo),
		booking.NewCreateBooking(repo, noopNotifier{}, noopAudit{}),
		cache.New(&config.Config{}),
	)

	r := gin.New()
	r.GET("/api/services", h.ListServices)
	r.GET("/api/book/availability", h.Availability)
	r.POST("/api/book", h.CreateBooking)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ClientFirstName: "Ana",
		ClientLastName:  "Moreno",
		ClientEmail:     "ana.moreno@example.com",
		ClientPhone:     "+34 600 111 222",
		ServiceName:     "Swedish Massage",
		AppointmentTime: "2026-09-07T11:00",
	}
}

func TestListServicesEndpoint(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	w := doJSON(t, r, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.Service `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Facial", resp.Data[0].Name)
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	w := doJSON(t, r, http.MethodGet, "/api/book/availability?date=2026-09-07", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day domain.DayAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, "2026-09-07", day.Date)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, day.Slots)
}

func TestAvailabilityEndpoint_MissingDate(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	w := doJSON(t, r, http.MethodGet, "/api/book/availability", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_date")
}

func TestAvailabilityEndpoint_BadDate(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	w := doJSON(t, r, http.MethodGet, "/api/book/availability?date=next-monday", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_date")
}

func TestCreateBookingEndpoint(t *testing.T) {
	repo := newStubRepository()
	r := newPublicRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/book", bookingRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.AppointmentID)
	assert.NotEmpty(t, resp.Reference)
	require.Len(t, repo.appointments, 1)
}

func TestCreateBookingEndpoint_MissingEmail(t *testing.T) {
	repo := newStubRepository()
	r := newPublicRouter(repo)

	req := bookingRequest()
	req.ClientEmail = ""

	w := doJSON(t, r, http.MethodPost, "/api/book", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_client_email")

	// rejected before any datastore call
	assert.Zero(t, repo.calls)
}

func TestCreateBookingEndpoint_UnknownService(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	req := bookingRequest()
	req.ServiceName = "Hot Stone Ritual"

	w := doJSON(t, r, http.MethodPost, "/api/book", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "service_not_found")
}

func TestCreateBookingEndpoint_SlotTaken(t *testing.T) {
	repo := newStubRepository()
	r := newPublicRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/book", bookingRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	second := bookingRequest()
	second.ClientEmail = "someone.else@example.com"

	w = doJSON(t, r, http.MethodPost, "/api/book", second)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slot_unavailable")
	assert.Len(t, repo.appointments, 1)
}

func TestCreateBookingEndpoint_MalformedJSON(t *testing.T) {
	r := newPublicRouter(newStubRepository())

	req := httptest.NewRequest(http.MethodPost, "/api/book", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}
