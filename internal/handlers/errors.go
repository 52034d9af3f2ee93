package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var businessStatus = map[string]int{
	"time_conflict":         http.StatusConflict,
	"booking_in_progress":   http.StatusConflict,
	"invalid_state":         http.StatusConflict,
	"reminder_already_sent": http.StatusConflict,

	"salon_closed":           http.StatusUnprocessableEntity,
	"outside_business_hours": http.StatusUnprocessableEntity,
	"closing_time_exceeded":  http.StatusUnprocessableEntity,
	"in_the_past":            http.StatusUnprocessableEntity,
	"client_without_phone":   http.StatusUnprocessableEntity,
}

var businessMessages = map[string]string{
	"time_conflict":          "Conflito de horário.",
	"booking_in_progress":    "Outro agendamento está sendo feito para este dia. Tente novamente.",
	"invalid_state":          "Operação não permitida no status atual.",
	"reminder_already_sent":  "Lembrete já foi enviado.",
	"salon_closed":           "Salão fechado nesta data.",
	"outside_business_hours": "Horário fora do expediente.",
	"closing_time_exceeded":  "Serviço ultrapassa o horário de fechamento.",
	"in_the_past":            "Não é possível agendar no passado.",
	"client_without_phone":   "Cliente não possui WhatsApp cadastrado.",
	"client_not_found":       "Cliente não encontrado.",
	"service_not_found":      "Serviço não encontrado.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"reminder_not_found":     "Lembrete não encontrado.",
	"invalid_date":           "Data inválida.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"invalid_duration":       "Duração inválida.",
	"invalid_period":         "Período inválido.",
	"invalid_reminder_type":  "Tipo de lembrete inválido.",
	"invalid_status":         "Status inválido.",
}

// writeError traduz erros de negócio em status HTTP; o resto vira 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		log.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := be.Reason
	if msg == "" {
		msg = businessMessages[be.Code]
	}
	if msg == "" {
		msg = be.Code
	}

	status, ok := businessStatus[be.Code]
	switch {
	case ok:
	case strings.HasSuffix(be.Code, "_not_found"):
		status = http.StatusNotFound
	default:
		status = http.StatusBadRequest
	}

	httperr.Write(c, status, be.Code, msg)
}
