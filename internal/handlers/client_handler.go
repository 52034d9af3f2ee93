package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	db               *gorm.DB
	log              *zap.Logger
	checkEmailDomain bool
}

func NewClientHandler(db *gorm.DB, log *zap.Logger, checkEmailDomain bool) *ClientHandler {
	return &ClientHandler{db: db, log: log, checkEmailDomain: checkEmailDomain}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name,omitempty"`
	WhatsApp *string `json:"whatsapp,omitempty"`
	Email    *string `json:"email,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR whatsapp LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client := models.Client{Name: strings.TrimSpace(req.Name)}
	if !h.applyContact(c, &client, &req.WhatsApp, &req.Email, &req.Birthday) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		writeError(c, h.log, err)
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if !h.applyContact(c, &client, req.WhatsApp, req.Email, req.Birthday) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// applyContact valida e copia os campos opcionais; nil mantém o valor atual.
func (h *ClientHandler) applyContact(
	c *gin.Context,
	client *models.Client,
	whatsapp, email, birthday *string,
) bool {

	if client.Name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
		return false
	}

	if whatsapp != nil {
		phone := strings.TrimSpace(*whatsapp)
		if phone != "" && !validators.IsPhoneValid(phone) {
			httperr.BadRequest(c, "invalid_whatsapp", "WhatsApp inválido.")
			return false
		}
		client.WhatsApp = phone
	}

	if email != nil {
		addr := strings.ToLower(strings.TrimSpace(*email))
		if addr != "" && h.checkEmailDomain && !validators.IsEmailDomainValid(addr) {
			httperr.BadRequest(c, "invalid_email_domain", "Domínio de e-mail inválido.")
			return false
		}
		client.Email = addr
	}

	if birthday != nil {
		if *birthday == "" {
			client.Birthday = nil
		} else {
			b, err := time.Parse("2006-01-02", *birthday)
			if err != nil {
				httperr.BadRequest(c, "invalid_birthday", "Data de aniversário inválida.")
				return false
			}
			client.Birthday = &b
		}
	}

	return true
}
