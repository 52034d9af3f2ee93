package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/messaging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Service reúne os casos de uso de lembretes; todos compartilham as mesmas
// dependências.
type Service struct {
	repo      domain.Repository
	scheduler *domain.Scheduler
	audit     Auditor
	metrics   *metrics.Metrics
	log       *zap.Logger
	timezone  string
	now       func() time.Time
}

func NewService(
	repo domain.Repository,
	scheduler *domain.Scheduler,
	audit Auditor,
	m *metrics.Metrics,
	log *zap.Logger,
	tz string,
) *Service {
	return &Service{
		repo:      repo,
		scheduler: scheduler,
		audit:     audit,
		metrics:   m,
		log:       log.Named("reminders"),
		timezone:  tz,
		now: func() time.Time {
			return timezone.NowIn(tz)
		},
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateInput struct {
	UserID *uint

	ClientID      uint
	Type          string
	ScheduledDate string
	Message       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Reminder, error) {
	t, ok := domain.ParseType(in.Type)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_reminder_type")
	}

	client, err := s.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	scheduled := timezone.StartOfDay(s.now())
	if in.ScheduledDate != "" {
		scheduled, err = timezone.ParseDate(s.timezone, in.ScheduledDate)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	msg := in.Message
	if msg == "" {
		msg = s.scheduler.DefaultMessage(t, client)
	}

	r := &models.Reminder{
		ClientID:      client.ID,
		ClientName:    client.Name,
		Type:          string(t),
		ScheduledDate: scheduled,
		Message:       msg,
		Status:        string(domain.StatusPending),
	}

	if err := s.repo.CreateReminder(ctx, r); err != nil {
		return nil, err
	}

	s.metrics.RemindersCreated(r.Type, 1)

	s.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "reminder_created",
		Entity:   "reminder",
		EntityID: &r.ID,
	})

	return r, nil
}

// ======================================================
// SEND
// ======================================================

type SendOutput struct {
	Reminder *models.Reminder `json:"reminder"`
	Link     string           `json:"link"`
}

// Send marca o lembrete como enviado e devolve o link do WhatsApp Web.
func (s *Service) Send(ctx context.Context, userID *uint, id uint) (*SendOutput, error) {
	r, err := s.repo.GetReminder(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("reminder_not_found")
	}

	if domain.Status(r.Status) != domain.StatusPending {
		return nil, httperr.ErrBusiness("reminder_already_sent")
	}

	client, err := s.repo.GetClient(ctx, r.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	link, err := messaging.WhatsAppLink(client.WhatsApp, r.Message)
	if err != nil {
		return nil, httperr.ErrBusiness("client_without_phone")
	}

	now := s.now()
	if err := domain.MarkSent(r, now); err != nil {
		return nil, err
	}

	// o UPDATE condicional decide entre envios simultâneos
	sent, err := s.repo.MarkReminderSent(ctx, r.ID, now)
	if err != nil {
		return nil, err
	}
	if !sent {
		return nil, httperr.ErrBusiness("reminder_already_sent")
	}

	s.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "reminder_sent",
		Entity:   "reminder",
		EntityID: &r.ID,
	})

	return &SendOutput{Reminder: r, Link: link}, nil
}

// ======================================================
// LIST
// ======================================================

func (s *Service) List(ctx context.Context, status string) ([]models.Reminder, error) {
	switch domain.Status(status) {
	case "", domain.StatusPending, domain.StatusSent:
	default:
		return nil, httperr.ErrBusiness("invalid_status")
	}

	return s.repo.ListReminders(ctx, status)
}
