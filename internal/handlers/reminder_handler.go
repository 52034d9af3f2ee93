package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucReminder "github.com/BruksfildServices01/salon-scheduler/internal/usecase/reminder"
)

type ReminderHandler struct {
	svc *ucReminder.Service
	log *zap.Logger
}

func NewReminderHandler(svc *ucReminder.Service, log *zap.Logger) *ReminderHandler {
	return &ReminderHandler{svc: svc, log: log}
}

type CreateReminderRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	Type          string `json:"type" binding:"required"`
	ScheduledDate string `json:"scheduled_date"`
	Message       string `json:"message"`
}

func (h *ReminderHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.svc.Create(c.Request.Context(), ucReminder.CreateInput{
		UserID:        middleware.UserID(c),
		ClientID:      req.ClientID,
		Type:          req.Type,
		ScheduledDate: req.ScheduledDate,
		Message:       req.Message,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// Send marca como enviado e devolve o link do WhatsApp Web para o atendente.
func (h *ReminderHandler) Send(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.svc.Send(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// GenerateBirthdays roda sob demanda o mesmo job do cron.
func (h *ReminderHandler) GenerateBirthdays(c *gin.Context) {
	n, err := h.svc.GenerateBirthdayReminders(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"created": n})
}
