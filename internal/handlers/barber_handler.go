package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/httpresp"
	"github.com/navalha-app/agenda-api/internal/middleware"
	"github.com/navalha-app/agenda-api/internal/models"
	"github.com/navalha-app/agenda-api/internal/validators"
)

type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, audit *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required,min=6"`
	Role     string `json:"role"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"nome"`
	Active *bool   `json:"ativo"`
}

// --------- Handlers ---------

type barberListItem struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"nome"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Active bool      `json:"ativo"`
}

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("active = true").
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao buscar barbeiros.")
		return
	}

	out := make([]barberListItem, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, barberListItem{
			ID:     b.ID,
			Name:   b.Name,
			Email:  b.Email,
			Role:   b.Role,
			Active: b.Active,
		})
	}

	httpresp.List(c, out)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome, email e senha (mínimo 6 caracteres) são obrigatórios.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar barbeiro.")
		return
	}

	role := "colaborador"
	if req.Role == "admin" {
		role = "admin"
	}

	barber := models.Barber{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.BadRequest(c, "barber_already_exists", "Já existe um barbeiro com este nome ou email.")
		return
	}

	adminID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)
	h.audit.Dispatch(audit.Event{
		BarberID: &adminID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusCreated, barberListItem{
		ID:     barber.ID,
		Name:   barber.Name,
		Email:  barber.Email,
		Role:   barber.Role,
		Active: barber.Active,
	})
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "ID obrigatório.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao atualizar barbeiro.")
		return
	}

	adminID := c.MustGet(middleware.ContextBarberID).(uuid.UUID)
	h.audit.Dispatch(audit.Event{
		BarberID: &adminID,
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	httpresp.OK(c, barberListItem{
		ID:     barber.ID,
		Name:   barber.Name,
		Email:  barber.Email,
		Role:   barber.Role,
		Active: barber.Active,
	})
}
