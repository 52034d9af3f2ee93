package reminder

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	DefaultMilestoneVisits  = 10
	DefaultMilestoneMessage = "🎉 Parabéns {cliente}! Você completou {visitas} atendimentos! Temos um brinde especial ou desconto exclusivo esperando por você. Entre em contato para resgatar! 💝"
	DefaultBirthdayMessage  = "🎉 Parabéns {cliente}! Hoje é seu dia especial! Que tal comemorar com um cuidado especial para você? Temos uma promoção especial para aniversariantes! 🎂💄"
	DefaultPromotionMessage = "✨ Promoção especial para você {cliente}! Não perca essa oportunidade incrível. Aproveite para cuidar da sua beleza! 💇‍♀️"
)

// Milestone dispara uma única vez, quando a contagem de atendimentos
// concluídos chega exatamente a Visits.
type Milestone struct {
	Visits  int    `yaml:"visits"`
	Message string `yaml:"message"`
}

func (m Milestone) Reached(visitCount int) bool {
	return m.Visits > 0 && visitCount == m.Visits
}

type Templates struct {
	Birthday  string `yaml:"birthday"`
	Promotion string `yaml:"promotion"`
}

type Scheduler struct {
	rules     *RuleSet
	milestone Milestone
	templates Templates
}

func NewScheduler(rules *RuleSet, milestone Milestone, templates Templates) *Scheduler {
	if milestone.Message == "" {
		milestone.Message = DefaultMilestoneMessage
	}
	if templates.Birthday == "" {
		templates.Birthday = DefaultBirthdayMessage
	}
	if templates.Promotion == "" {
		templates.Promotion = DefaultPromotionMessage
	}

	return &Scheduler{
		rules:     rules,
		milestone: milestone,
		templates: templates,
	}
}

func (s *Scheduler) Rules() *RuleSet {
	return s.rules
}

// OnCompleted gera os lembretes de um atendimento realizado. visitCount já
// inclui o atendimento atual.
func (s *Scheduler) OnCompleted(
	client *models.Client,
	ap *models.Appointment,
	svc *models.Service,
	visitCount int,
	now time.Time,
) []models.Reminder {

	rule := s.rules.RuleForService(svc, ap.ServiceName)
	apID := ap.ID

	out := []models.Reminder{{
		ClientID:      client.ID,
		ClientName:    client.Name,
		AppointmentID: &apID,
		Type:          string(TypeMaintenance),
		ScheduledDate: now.AddDate(0, 0, rule.ReminderDays),
		Status:        string(StatusPending),
		Message: Render(rule.Message, Vars{
			Client:  client.Name,
			Service: ap.ServiceName,
			Days:    rule.ReminderDays,
			Visits:  visitCount,
		}),
	}}

	if s.milestone.Reached(visitCount) {
		out = append(out, models.Reminder{
			ClientID:      client.ID,
			ClientName:    client.Name,
			AppointmentID: &apID,
			Type:          string(TypeMilestone),
			ScheduledDate: now,
			Status:        string(StatusPending),
			Message: Render(s.milestone.Message, Vars{
				Client:  client.Name,
				Service: ap.ServiceName,
				Visits:  visitCount,
			}),
		})
	}

	return out
}

// DefaultMessage devolve o texto padrão de lembretes avulsos já preenchido.
func (s *Scheduler) DefaultMessage(t Type, client *models.Client) string {
	var tmpl string
	switch t {
	case TypeBirthday:
		tmpl = s.templates.Birthday
	case TypePromotion:
		tmpl = s.templates.Promotion
	case TypeMilestone:
		tmpl = s.milestone.Message
	default:
		tmpl = s.rules.fallback.Message
	}

	return Render(tmpl, Vars{
		Client: client.Name,
		Days:   s.rules.fallback.ReminderDays,
		Visits: client.VisitCount,
	})
}

func (s *Scheduler) Birthday(client *models.Client, now time.Time) models.Reminder {
	return models.Reminder{
		ClientID:      client.ID,
		ClientName:    client.Name,
		Type:          string(TypeBirthday),
		ScheduledDate: now,
		Status:        string(StatusPending),
		Message:       s.DefaultMessage(TypeBirthday, client),
	}
}
