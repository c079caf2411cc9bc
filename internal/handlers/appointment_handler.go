package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/navalha-app/agenda-api/internal/httperr"
	"github.com/navalha-app/agenda-api/internal/httpresp"
	"github.com/navalha-app/agenda-api/internal/middleware"
	ucBooking "github.com/navalha-app/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucBooking.CreateBooking
	listByDateUC   *ucBooking.ListByDate
	changeStatusUC *ucBooking.ChangeStatus
	freeBarbersUC  *ucBooking.GetFreeBarbers
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateBooking,
	listByDateUC *ucBooking.ListByDate,
	changeStatusUC *ucBooking.ChangeStatus,
	freeBarbersUC *ucBooking.GetFreeBarbers,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		listByDateUC:   listByDateUC,
		changeStatusUC: changeStatusUC,
		freeBarbersUC:  freeBarbersUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName     string      `json:"cliente_nome" binding:"required"`
	ClientWhatsapp string      `json:"cliente_whatsapp" binding:"required"`
	ServiceIDs     []uuid.UUID `json:"servico_ids" binding:"required"`
	BarberID       uuid.UUID   `json:"barbeiro_id" binding:"required"`
	Date           string      `json:"data" binding:"required"`
	Time           string      `json:"hora" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func callerFromContext(c *gin.Context) ucBooking.Caller {
	return ucBooking.Caller{
		BarberID: c.MustGet(middleware.ContextBarberID).(uuid.UUID),
		Role:     c.MustGet(middleware.ContextRole).(string),
	}
}

// ======================================================
// CREATE (multi-serviço, encadeado)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", "Dados incompletos. Envie: cliente_nome, cliente_whatsapp, servico_ids, data, hora, barbeiro_id.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClientName:     req.ClientName,
		ClientWhatsapp: req.ClientWhatsapp,
		ServiceIDs:     req.ServiceIDs,
		BarberID:       req.BarberID,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		writePanelError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"ok":           true,
		"mensagem":     strconv.Itoa(len(created)) + " agendamento(s) criado(s) com sucesso.",
		"agendamentos": created,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("data")
	if date == "" {
		httperr.BadRequest(c, "invalid_payload", "Parâmetro 'data' é obrigatório (formato: yyyy-mm-dd).")
		return
	}

	var barberFilter *uuid.UUID
	if raw := c.Query("barbeiro_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_payload", "barbeiro_id inválido.")
			return
		}
		barberFilter = &id
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), ucBooking.ListByDateInput{
		Date:     date,
		BarberID: barberFilter,
		Caller:   callerFromContext(c),
	})
	if err != nil {
		writePanelError(c, err)
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_payload", "ID obrigatório.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_status", "Status inválido. Use: pendente, confirmado ou cancelado.")
		return
	}

	ap, err := h.changeStatusUC.Execute(c.Request.Context(), ucBooking.ChangeStatusInput{
		AppointmentID: id,
		NewStatus:     req.Status,
		Caller:        callerFromContext(c),
	})
	if err != nil {
		writePanelError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"agendamento": ap})
}

// ======================================================
// BARBEIROS DISPONÍVEIS
// ======================================================

func (h *AppointmentHandler) FreeBarbers(c *gin.Context) {
	date := c.Query("data")
	clock := c.Query("hora")
	duration, _ := strconv.Atoi(c.Query("duracao_minutos"))

	if date == "" || clock == "" || duration < 1 {
		httperr.BadRequest(c, "invalid_payload", "Parâmetros obrigatórios: data, hora, duracao_minutos.")
		return
	}

	free, err := h.freeBarbersUC.Execute(c.Request.Context(), ucBooking.GetFreeBarbersInput{
		Date:            date,
		Time:            clock,
		DurationMinutes: duration,
	})
	if err != nil {
		writePanelError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"barbeiros": free})
}
