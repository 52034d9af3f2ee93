package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func toListDTO(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		end := ap.Time
		if begin, err := schedule.ParseClock(ap.Time); err == nil {
			end = schedule.FormatClock(begin + ap.Duration)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			Time:        ap.Time,
			EndTime:     end,
			Duration:    ap.Duration,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ServiceName: ap.ServiceName,
			Price:       ap.Price,
		})
	}
	return out
}

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	d, err := time.Parse(schedule.DateLayout, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	apps, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		schedule.DateKey(d),
		schedule.DateKey(d.AddDate(0, 0, 1)),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(apps), nil
}

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	apps, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		schedule.DateKey(start),
		schedule.DateKey(end),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(apps), nil
}
