package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalogue --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (create) --------

	// CreateAppointment lê os agendamentos ativos do dia e grava o novo na
	// mesma transação. check recebe os existentes e pode recusar a reserva;
	// nil grava sem conferir.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		check func(existing []models.Appointment) error,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus grava o novo status apenas se o registro ainda
	// estiver em from; caso contrário devolve invalid_state.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from string,
	) error

	// CompleteAppointment marca o atendimento como realizado apenas se ele
	// ainda estiver aberto, incrementa as estatísticas do cliente e grava os
	// lembretes montados por build a partir do cliente já atualizado, tudo
	// numa única transação.
	CompleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		now time.Time,
		build func(client *models.Client) []models.Reminder,
	) (*models.Client, []models.Reminder, error)

	// -------- Availability / listing --------
	ListActiveAppointmentsForDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Appointment, error)
}
