package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ServiceHandler mantém o catálogo de serviços do salão.
type ServiceHandler struct {
	db    *gorm.DB
	rules *reminder.RuleSet
	log   *zap.Logger
}

func NewServiceHandler(db *gorm.DB, rules *reminder.RuleSet, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, rules: rules, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	DurationMin      int     `json:"duration_min" binding:"required,min=1"`
	Price            float64 `json:"price" binding:"min=0"`
	Category         string  `json:"category"`
	ReminderCategory string  `json:"reminder_category"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	DurationMin      *int     `json:"duration_min,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	Active           *bool    `json:"active,omitempty"`
	Category         *string  `json:"category,omitempty"`
	ReminderCategory *string  `json:"reminder_category,omitempty"`
}

// --------- Handlers ---------
func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("id ASC").
		Find(&services).Error; err != nil {

		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !h.validReminderCategory(c, req.ReminderCategory) {
		return
	}

	svc := models.Service{
		Name:             strings.TrimSpace(req.Name),
		Description:      req.Description,
		DurationMin:      req.DurationMin,
		Price:            req.Price,
		Active:           true,
		Category:         strings.ToLower(req.Category),
		ReminderCategory: req.ReminderCategory,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "service_already_exists", "Já existe um serviço com esse nome.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}
	if req.Category != nil {
		svc.Category = strings.ToLower(*req.Category)
	}
	if req.ReminderCategory != nil {
		if !h.validReminderCategory(c, *req.ReminderCategory) {
			return
		}
		svc.ReminderCategory = *req.ReminderCategory
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&svc).Error; err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) validReminderCategory(c *gin.Context, key string) bool {
	if key == "" {
		return true
	}
	if _, ok := h.rules.RuleForCategory(key); !ok {
		httperr.BadRequest(c, "invalid_reminder_category", "Categoria de lembrete inválida.")
		return false
	}
	return true
}
