package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, serviceID).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	check func(existing []models.Appointment) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if check != nil {
			var existing []models.Appointment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("date = ? AND status <> ?", ap.Date, string(domain.StatusCancelled)).
				Order("time ASC").
				Find(&existing).Error; err != nil {
				return err
			}

			if err := check(existing); err != nil {
				return err
			}
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, from).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"cancelled_at": ap.CancelledAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func (r *AppointmentGormRepository) CompleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	now time.Time,
	build func(client *models.Client) []models.Reminder,
) (*models.Client, []models.Reminder, error) {

	var (
		client    models.Client
		reminders []models.Reminder
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// só um concluinte vence: o status é conferido no próprio UPDATE
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status IN ?", ap.ID, domain.OpenStatuses()).
			Updates(map[string]any{
				"status":       string(domain.StatusCompleted),
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("invalid_state")
		}

		res = tx.Model(&models.Client{}).
			Where("id = ?", ap.ClientID).
			Updates(map[string]any{
				"visit_count": gorm.Expr("visit_count + ?", 1),
				"total_spent": gorm.Expr("total_spent + ?", ap.Price),
				"last_visit":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("client_not_found")
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&client, ap.ClientID).Error; err != nil {
			return err
		}

		if build != nil {
			reminders = build(&client)
		}

		if len(reminders) > 0 {
			if err := tx.Create(&reminders).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &client, reminders, nil
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointmentsForDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// ListAppointmentsForPeriod devolve os agendamentos com from <= date < to.
func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
