package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/httpresp"
	"github.com/navalha-app/agenda-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name          string `json:"nome" binding:"required"`
	DurationMin   int    `json:"duracao_minutos"`
	PriceCentavos int    `json:"preco_centavos"`
}

type UpdateServiceRequest struct {
	Name          *string `json:"nome"`
	DurationMin   *int    `json:"duracao_minutos"`
	PriceCentavos *int    `json:"preco_centavos"`
	Active        *bool   `json:"ativo"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao buscar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome do serviço é obrigatório.")
		return
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	price := req.PriceCentavos
	if price < 0 {
		price = 0
	}

	service := models.Service{
		Name:          strings.TrimSpace(req.Name),
		DurationMin:   duration,
		PriceCentavos: price,
		Active:        true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.BadRequest(c, "service_already_exists", "Já existe um serviço com este nome.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "ID obrigatório.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		service.DurationMin = *req.DurationMin
	}
	if req.PriceCentavos != nil && *req.PriceCentavos >= 0 {
		service.PriceCentavos = *req.PriceCentavos
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}
