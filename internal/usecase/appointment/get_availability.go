package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var weekdayNames = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// calendarDay monta o esqueleto do dia; Slots fica a cargo de quem chama.
func calendarDay(policy *schedule.Policy, date time.Time) dto.CalendarDayDTO {
	day := dto.CalendarDayDTO{
		Date:    schedule.DateKey(date),
		Weekday: weekdayNames[date.Weekday()],
		Sunday:  policy.IsSunday(date),
		Slots:   []string{},
	}

	if name, ok := policy.IsHoliday(date); ok {
		day.Holiday = name
	}

	if reason, closed := policy.Closure(date); closed {
		day.Reason = reason
		return day
	}

	day.Open = true
	day.ClosingTime = policy.ClosingTime(date)
	return day
}

// ======================================================
// Calendário (sem serviço)
// ======================================================

type GetCalendarDay struct {
	policy   *schedule.Policy
	timezone string
}

func NewGetCalendarDay(policy *schedule.Policy, tz string) *GetCalendarDay {
	return &GetCalendarDay{policy: policy, timezone: tz}
}

func (uc *GetCalendarDay) Execute(date string) (*dto.CalendarDayDTO, error) {
	d, err := timezone.ParseDate(uc.timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	day := calendarDay(uc.policy, d)
	day.Slots = uc.policy.GenerateSlots(d)
	return &day, nil
}

// ======================================================
// Disponibilidade para um serviço
// ======================================================

type GetAvailability struct {
	repo     domain.Repository
	policy   *schedule.Policy
	timezone string
}

func NewGetAvailability(
	repo domain.Repository,
	policy *schedule.Policy,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		policy:   policy,
		timezone: tz,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	serviceID uint,
) (*dto.CalendarDayDTO, error) {

	d, err := timezone.ParseDate(uc.timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	day := calendarDay(uc.policy, d)
	if !day.Open {
		return &day, nil
	}

	existing, err := uc.repo.ListActiveAppointmentsForDate(ctx, day.Date)
	if err != nil {
		return nil, err
	}

	day.Slots = uc.policy.AvailableSlots(d, svc.DurationMin, existing)
	return &day, nil
}

// ======================================================
// Checagem pontual
// ======================================================

type CheckAvailability struct {
	repo     domain.Repository
	policy   *schedule.Policy
	timezone string
}

func NewCheckAvailability(
	repo domain.Repository,
	policy *schedule.Policy,
	tz string,
) *CheckAvailability {
	return &CheckAvailability{
		repo:     repo,
		policy:   policy,
		timezone: tz,
	}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	date string,
	start string,
	durationMinutes int,
) (schedule.Availability, error) {

	d, err := timezone.ParseDate(uc.timezone, date)
	if err != nil {
		return schedule.Availability{}, httperr.ErrBusiness("invalid_date")
	}
	if durationMinutes <= 0 {
		return schedule.Availability{}, httperr.ErrBusiness("invalid_duration")
	}

	existing, err := uc.repo.ListActiveAppointmentsForDate(ctx, schedule.DateKey(d))
	if err != nil {
		return schedule.Availability{}, err
	}

	return uc.policy.IsSlotAvailable(d, start, durationMinutes, existing), nil
}
