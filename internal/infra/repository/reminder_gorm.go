package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

func (r *ReminderGormRepository) CreateReminder(
	ctx context.Context,
	rem *models.Reminder,
) error {
	return r.db.WithContext(ctx).Create(rem).Error
}

func (r *ReminderGormRepository) GetReminder(
	ctx context.Context,
	id uint,
) (*models.Reminder, error) {

	var rem models.Reminder
	if err := r.db.WithContext(ctx).First(&rem, id).Error; err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *ReminderGormRepository) MarkReminderSent(
	ctx context.Context,
	id uint,
	sentAt time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":    string(domain.StatusSent),
			"sent_date": sentAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ReminderGormRepository) ListReminders(
	ctx context.Context,
	status string,
) ([]models.Reminder, error) {

	q := r.db.WithContext(ctx).Model(&models.Reminder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.Reminder
	if err := q.
		Order("scheduled_date ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReminderGormRepository) HasReminderBetween(
	ctx context.Context,
	clientID uint,
	reminderType string,
	from time.Time,
	to time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where(
			"client_id = ? AND type = ? AND scheduled_date >= ? AND scheduled_date < ?",
			clientID, reminderType, from, to,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReminderGormRepository) CountDuePending(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("status = ? AND scheduled_date <= ?", string(domain.StatusPending), now).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReminderGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ReminderGormRepository) ListClientsWithBirthday(
	ctx context.Context,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("birthday IS NOT NULL").
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Compile-time check
var _ domain.Repository = (*ReminderGormRepository)(nil)
