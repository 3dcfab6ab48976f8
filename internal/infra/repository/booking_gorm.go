package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/serenity-aesthetics/salon-api/internal/domain/booking"
	"github.com/serenity-aesthetics/salon-api/internal/httperr"
	"github.com/serenity-aesthetics/salon-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalon(
	ctx context.Context,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
	filter domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Model(&models.Service{})

	if filter.OnlyActive {
		q = q.Where("active = true")
	}

	if category := strings.ToLower(strings.TrimSpace(filter.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var service models.Service
	err := r.db.WithContext(ctx).
		Where("name = ? AND active = true", name).
		First(&service).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// UpsertClientByEmail looks up by (lowercased) email. When found, contact
// fields are overwritten unconditionally with the submitted values and
// client.ID is set to the existing row; otherwise a new row is inserted.
func (r *BookingGormRepository) UpsertClientByEmail(
	ctx context.Context,
	client *models.Client,
) error {

	var existing models.Client
	err := r.db.WithContext(ctx).
		Where("email = ?", client.Email).
		First(&existing).Error

	if err == nil {
		client.ID = existing.ID
		client.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(client).Error
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(client).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// AssertSlotFree locks the overlapping pending/confirmed appointment rows
// and fails when any exist. Run inside InTx so two concurrent bookings for
// one slot serialize and the second sees the first's row.
func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	start time.Time,
	end time.Time,
) error {

	var ids []uint
	if err := blockingOverlapQuery(r.db.WithContext(ctx), start, end).
		Find(&ids).Error; err != nil {
		return err
	}

	if len(ids) > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return nil
}

// blockingOverlapQuery selects the ids of slot-holding appointments that
// overlap [start, end) under FOR UPDATE. Postgres rejects a locking clause
// on aggregates, so the rows themselves are fetched and counted in Go.
func blockingOverlapQuery(db *gorm.DB, start, end time.Time) *gorm.DB {
	return db.Model(&models.Appointment{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"status IN ('pending', 'confirmed') AND start_time < ? AND end_time > ?",
			end,
			start,
		)
}

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListTemplateSlots(
	ctx context.Context,
	weekday int,
) ([]models.ScheduleSlot, error) {

	var slots []models.ScheduleSlot
	if err := r.db.WithContext(ctx).
		Where("weekday = ? AND active = true", weekday).
		Order("time_of_day ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *BookingGormRepository) ListBookedStartTimes(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]time.Time, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time").
		Where(
			"status IN ('pending', 'confirmed') AND start_time >= ? AND start_time < ?",
			dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, len(apps))
	for _, ap := range apps {
		out = append(out, ap.StartTime)
	}
	return out, nil
}

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			dayStart,
			dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *BookingGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewBookingGormRepository(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
