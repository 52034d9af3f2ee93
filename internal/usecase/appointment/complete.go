package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CompleteAppointment struct {
	repo      domain.Repository
	scheduler *reminder.Scheduler
	audit     Auditor
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	scheduler *reminder.Scheduler,
	audit Auditor,
	m *metrics.Metrics,
	log *zap.Logger,
	tz string,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:      repo,
		scheduler: scheduler,
		audit:     audit,
		metrics:   m,
		log:       log.Named("complete"),
		now:       salonClock(tz),
	}
}

type CompleteAppointmentOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	Client      *models.Client      `json:"client"`
	Reminders   []models.Reminder   `json:"reminders"`
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uint,
) (*CompleteAppointmentOutput, error) {

	// ---- 1️⃣ Agendamento + transição ----
	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.now()
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	// ---- 2️⃣ Serviço para a regra de lembrete ----
	// Serviço recriado no catálogo com outro id ainda é achado pelo nome
	// gravado; sem nenhum dos dois vale a regra do nome.
	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil {
		svc, err = uc.repo.GetServiceByName(ctx, ap.ServiceName)
		if err != nil {
			svc = nil
		}
	}

	// ---- 3️⃣ Persistência atômica ----
	// Estatísticas e lembretes saem da contagem gravada na transação.
	client, reminders, err := uc.repo.CompleteAppointment(ctx, ap, now,
		func(c *models.Client) []models.Reminder {
			return uc.scheduler.OnCompleted(c, ap, svc, c.VisitCount, now)
		},
	)
	if err != nil {
		return nil, err
	}

	for _, r := range reminders {
		uc.metrics.RemindersCreated(r.Type, 1)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"visit_count": client.VisitCount,
			"reminders":   len(reminders),
		},
	})

	uc.log.Info("appointment completed",
		zap.Uint("id", ap.ID),
		zap.Uint("client_id", client.ID),
		zap.Int("visit_count", client.VisitCount),
		zap.Int("reminders", len(reminders)),
	)

	return &CompleteAppointmentOutput{
		Appointment: ap,
		Client:      client,
		Reminders:   reminders,
	}, nil
}
