package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	confirm  *ucAppointment.ConfirmAppointment
	cancel   *ucAppointment.CancelAppointment
	complete *ucAppointment.CompleteAppointment
	byDate   *ucAppointment.ListAppointmentsByDate
	byMonth  *ucAppointment.ListAppointmentsByMonth
	log      *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		byDate:   byDate,
		byMonth:  byMonth,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:    middleware.UserID(c),
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.complete.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	list, err := h.byDate.Execute(c.Request.Context(), date)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, okY := queryInt(c, "year")
	month, okM := queryInt(c, "month")
	if !okY || !okM {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	list, err := h.byMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}
