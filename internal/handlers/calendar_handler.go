package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// CalendarHandler expõe a agenda pública: dias, feriados, horários livres
// e regras de retorno por serviço.
type CalendarHandler struct {
	policy       *schedule.Policy
	rules        *reminder.RuleSet
	day          *ucAppointment.GetCalendarDay
	availability *ucAppointment.GetAvailability
	check        *ucAppointment.CheckAvailability
	log          *zap.Logger
}

func NewCalendarHandler(
	policy *schedule.Policy,
	rules *reminder.RuleSet,
	day *ucAppointment.GetCalendarDay,
	availability *ucAppointment.GetAvailability,
	check *ucAppointment.CheckAvailability,
	log *zap.Logger,
) *CalendarHandler {
	return &CalendarHandler{
		policy:       policy,
		rules:        rules,
		day:          day,
		availability: availability,
		check:        check,
		log:          log,
	}
}

// GET /api/calendar?date=YYYY-MM-DD
func (h *CalendarHandler) Day(c *gin.Context) {
	day, err := h.day.Execute(c.Query("date"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, day)
}

// GET /api/holidays?year=2025
func (h *CalendarHandler) Holidays(c *gin.Context) {
	year, ok := queryInt(c, "year")
	if !ok {
		year = time.Now().Year()
	}

	httpresp.List(c, h.policy.Holidays(year))
}

// GET /api/availability?date=YYYY-MM-DD&service_id=1
func (h *CalendarHandler) Availability(c *gin.Context) {
	serviceID, ok := queryInt(c, "service_id")
	if !ok || serviceID <= 0 {
		httperr.BadRequest(c, "invalid_service_id", "Serviço obrigatório.")
		return
	}

	day, err := h.availability.Execute(c.Request.Context(), c.Query("date"), uint(serviceID))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, day)
}

// GET /api/availability/check?date=YYYY-MM-DD&time=HH:MM&duration=60
func (h *CalendarHandler) Check(c *gin.Context) {
	duration, ok := queryInt(c, "duration")
	if !ok {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return
	}

	res, err := h.check.Execute(c.Request.Context(), c.Query("date"), c.Query("time"), duration)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}

// GET /api/reminder-rules?service=Mechas
func (h *CalendarHandler) ReminderRule(c *gin.Context) {
	httpresp.OK(c, h.rules.RuleFor(c.Query("service")))
}
