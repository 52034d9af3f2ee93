package reminder

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	CreateReminder(
		ctx context.Context,
		r *models.Reminder,
	) error

	GetReminder(
		ctx context.Context,
		id uint,
	) (*models.Reminder, error)

	// MarkReminderSent grava o envio apenas se o lembrete ainda estiver
	// pendente; false indica que outro envio chegou antes.
	MarkReminderSent(
		ctx context.Context,
		id uint,
		sentAt time.Time,
	) (bool, error)

	// ListReminders ordena por data agendada; status vazio lista todos.
	ListReminders(
		ctx context.Context,
		status string,
	) ([]models.Reminder, error)

	HasReminderBetween(
		ctx context.Context,
		clientID uint,
		reminderType string,
		from time.Time,
		to time.Time,
	) (bool, error)

	CountDuePending(
		ctx context.Context,
		now time.Time,
	) (int64, error)

	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	ListClientsWithBirthday(
		ctx context.Context,
	) ([]models.Client, error)
}
