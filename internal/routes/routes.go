package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucReminder "github.com/BruksfildServices01/salon-scheduler/internal/usecase/reminder"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Policy    *schedule.Policy
	Scheduler *reminder.Scheduler
	Locker    ucAppointment.Locker
	Audit     ucAppointment.Auditor
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
}

// RegisterRoutes monta a API e devolve o serviço de lembretes para os jobs.
func RegisterRoutes(r *gin.Engine, d Deps) *ucReminder.Service {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())
	r.Use(d.Metrics.Middleware())

	tz := d.Config.Timezone

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	reminderRepo := infraRepo.NewReminderGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Policy,
		d.Locker,
		d.Audit,
		d.Metrics,
		d.Log,
		tz,
	)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, tz)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, tz)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		d.Scheduler,
		d.Audit,
		d.Metrics,
		d.Log,
		tz,
	)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	calendarDayUC := ucAppointment.NewGetCalendarDay(d.Policy, tz)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Policy, tz)
	checkAvailabilityUC := ucAppointment.NewCheckAvailability(appointmentRepo, d.Policy, tz)

	reminderSvc := ucReminder.NewService(
		reminderRepo,
		d.Scheduler,
		d.Audit,
		d.Metrics,
		d.Log,
		tz,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		d.Log,
	)
	calendarHandler := handlers.NewCalendarHandler(
		d.Policy,
		d.Scheduler.Rules(),
		calendarDayUC,
		availabilityUC,
		checkAvailabilityUC,
		d.Log,
	)
	reminderHandler := handlers.NewReminderHandler(reminderSvc, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, d.Log, d.Config.IsProduction())
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Scheduler.Rules(), d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🩺 INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/calendar", calendarHandler.Day)
		api.GET("/holidays", calendarHandler.Holidays)
		api.GET("/availability", calendarHandler.Availability)
		api.GET("/availability/check", calendarHandler.Check)
		api.GET("/reminder-rules", calendarHandler.ReminderRule)
		api.GET("/services", serviceHandler.List)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)

			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// REMINDERS
			// ------------------------------
			secured.GET("/reminders", reminderHandler.List)
			secured.POST("/reminders", reminderHandler.Create)
			secured.POST("/reminders/:id/send", reminderHandler.Send)
			secured.POST("/reminders/birthdays", reminderHandler.GenerateBirthdays)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return reminderSvc
}
