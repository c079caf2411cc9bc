package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/httpresp"
	"github.com/navalha-app/agenda-api/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.Order("name ASC")

	if search := c.Query("busca"); search != "" {
		q = q.Where("name ILIKE ? OR whatsapp LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var clients []models.Client
	if err := q.Find(&clients).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao buscar clientes.")
		return
	}

	httpresp.List(c, clients)
}
