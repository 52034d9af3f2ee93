package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Violation string

const (
	ViolationNone         Violation = ""
	ViolationInvalidTime  Violation = "invalid_time"
	ViolationConflict     Violation = "time_conflict"
	ViolationClosingHours Violation = "closing_time_exceeded"
)

// Availability é o resultado de uma checagem de horário. Falhas nunca são
// erros: Reason traz o texto exibido ao usuário.
type Availability struct {
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
	Violation Violation `json:"violation,omitempty"`
}

func available() Availability {
	return Availability{Available: true}
}

func unavailable(v Violation, reason string) Availability {
	return Availability{Reason: reason, Violation: v}
}

// IsSlotAvailable verifica sobreposição com agendamentos ativos do mesmo dia
// e se o serviço termina até o fechamento. Dias fechados devem ser barrados
// antes, via GenerateSlots.
func (p *Policy) IsSlotAvailable(
	date time.Time,
	start string,
	durationMinutes int,
	existing []models.Appointment,
) Availability {

	begin, err := ParseClock(start)
	if err != nil {
		return unavailable(ViolationInvalidTime, fmt.Sprintf("Horário inválido: %s", start))
	}

	requested := make(map[string]struct{})
	for _, s := range OccupiedSlots(start, durationMinutes) {
		requested[s] = struct{}{}
	}

	day := DateKey(date)
	for _, ap := range existing {
		if ap.Date != day || !appointment.IsActive(ap.Status) {
			continue
		}

		for _, s := range OccupiedSlots(ap.Time, ap.Duration) {
			if _, clash := requested[s]; clash {
				return unavailable(
					ViolationConflict,
					fmt.Sprintf("Conflito com agendamento de %s às %s", ap.ClientName, ap.Time),
				)
			}
		}
	}

	w := p.windowFor(date)
	if begin+durationMinutes > w.close {
		return unavailable(
			ViolationClosingHours,
			fmt.Sprintf("Serviço ultrapassa horário de fechamento (%s)", FormatClock(w.close)),
		)
	}

	return available()
}

// AvailableSlots lista os horários do dia em que um serviço com a duração
// informada cabe sem conflito.
func (p *Policy) AvailableSlots(
	date time.Time,
	durationMinutes int,
	existing []models.Appointment,
) []string {

	base := p.GenerateSlots(date)

	out := make([]string, 0, len(base))
	for _, s := range base {
		if p.IsSlotAvailable(date, s, durationMinutes, existing).Available {
			out = append(out, s)
		}
	}
	return out
}

// FreeSlots remove apenas os horários que coincidem com o início de outro
// agendamento, ignorando a duração.
//
// Deprecated: não detecta sobreposição de serviços longos; use AvailableSlots.
func (p *Policy) FreeSlots(date time.Time, existing []models.Appointment) []string {
	day := DateKey(date)

	taken := make(map[string]struct{})
	for _, ap := range existing {
		if ap.Date == day && appointment.IsActive(ap.Status) {
			taken[ap.Time] = struct{}{}
		}
	}

	base := p.GenerateSlots(date)

	out := make([]string, 0, len(base))
	for _, s := range base {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
