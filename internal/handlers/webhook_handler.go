package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalha-app/agenda-api/internal/httperr"
	ucBooking "github.com/navalha-app/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// WebhookHandler atende o bot do canal de chat. As respostas são uniões
// etiquetadas (status ok/erro + motivo) compatíveis byte a byte com a
// integração existente — incluindo o conflito de horário devolvido com
// HTTP 200 e corpo de erro.
type WebhookHandler struct {
	createChatUC *ucBooking.CreateChatBooking
	freeSlotsUC  *ucBooking.GetFreeSlots
}

func NewWebhookHandler(
	createChatUC *ucBooking.CreateChatBooking,
	freeSlotsUC *ucBooking.GetFreeSlots,
) *WebhookHandler {
	return &WebhookHandler{
		createChatUC: createChatUC,
		freeSlotsUC:  freeSlotsUC,
	}
}

// ======================================================
// PAYLOADS / RESPOSTAS
// ======================================================

type ChatBookingRequest struct {
	ClienteNome     string `json:"cliente_nome"`
	ClienteWhatsapp string `json:"cliente_whatsapp"`
	ServicoNome     string `json:"servico_nome"`
	Data            string `json:"data"`
	Hora            string `json:"hora"`
	BarbeiroNome    string `json:"barbeiro_nome"`
}

type ChatSlotsRequest struct {
	Data         string `json:"data"`
	BarbeiroNome string `json:"barbeiro_nome"`
	ServicoNome  string `json:"servico_nome"`
}

type chatBookingOK struct {
	Status   string                        `json:"status"`
	Mensagem string                        `json:"mensagem"`
	Resumo   *ucBooking.ChatBookingSummary `json:"resumo_agendamento"`
}

type chatBookingErro struct {
	Status   string `json:"status"`
	Motivo   string `json:"motivo"`
	Mensagem string `json:"mensagem"`
}

type chatSlotsOK struct {
	Status   string   `json:"status"`
	Horarios []string `json:"horarios_disponiveis"`
	Mensagem string   `json:"mensagem,omitempty"`
}

type chatSlotsErro struct {
	Status   string `json:"status"`
	Mensagem string `json:"mensagem"`
}

// ======================================================
// CREATE
// ======================================================

func (h *WebhookHandler) CreateBooking(c *gin.Context) {
	var req ChatBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, chatBookingErro{
			Status:   "erro",
			Motivo:   "payload_invalido",
			Mensagem: "Dados incompletos. Envie whatsapp do cliente, serviço, data e hora.",
		})
		return
	}

	summary, err := h.createChatUC.Execute(c.Request.Context(), ucBooking.CreateChatBookingInput{
		ClientWhatsapp: req.ClienteWhatsapp,
		ClientName:     req.ClienteNome,
		ServiceName:    req.ServicoNome,
		BarberName:     req.BarbeiroNome,
		Date:           req.Data,
		Time:           req.Hora,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	mensagem := fmt.Sprintf(
		"Seu horário foi agendado para %s às %s com %s para %s.",
		summary.Date, summary.Time, summary.BarberName, summary.ServiceName,
	)

	c.JSON(http.StatusCreated, chatBookingOK{
		Status:   "ok",
		Mensagem: mensagem,
		Resumo:   summary,
	})
}

func (h *WebhookHandler) writeBookingError(c *gin.Context, err error) {
	code, _ := httperr.BusinessCode(err)

	switch code {
	case "invalid_payload", "invalid_date_or_time":
		c.JSON(http.StatusBadRequest, chatBookingErro{
			Status:   "erro",
			Motivo:   "payload_invalido",
			Mensagem: "Dados incompletos. Envie whatsapp do cliente, serviço, data e hora.",
		})
	case "service_not_found":
		c.JSON(http.StatusNotFound, chatBookingErro{
			Status:   "erro",
			Motivo:   "servico_nao_encontrado",
			Mensagem: "Serviço não encontrado ou inativo.",
		})
	case "barber_not_found":
		c.JSON(http.StatusNotFound, chatBookingErro{
			Status:   "erro",
			Motivo:   "barbeiro_nao_encontrado",
			Mensagem: "Barbeiro não encontrado ou inativo.",
		})
	case "time_conflict":
		// Falha "suave": o bot espera 200 para seguir o fluxo de reagendar
		c.JSON(http.StatusOK, chatBookingErro{
			Status:   "erro",
			Motivo:   "conflito_horario",
			Mensagem: "Esse horário não está disponível, escolha outro horário na agenda.",
		})
	default:
		log.Println("webhook booking error:", err)
		c.JSON(http.StatusInternalServerError, chatBookingErro{
			Status:   "erro",
			Motivo:   "erro_interno",
			Mensagem: "Tivemos um problema ao processar seu agendamento. Tente novamente em alguns instantes.",
		})
	}
}

// ======================================================
// HORÁRIOS DISPONÍVEIS
// ======================================================

func (h *WebhookHandler) ListFreeSlots(c *gin.Context) {
	var req ChatSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, chatSlotsErro{
			Status:   "erro",
			Mensagem: "Dados incompletos. Envie data, barbeiro_nome e servico_nome.",
		})
		return
	}

	slots, err := h.freeSlotsUC.Execute(c.Request.Context(), ucBooking.GetFreeSlotsInput{
		Date:        req.Data,
		BarberName:  req.BarbeiroNome,
		ServiceName: req.ServicoNome,
	})
	if err != nil {
		code, _ := httperr.BusinessCode(err)

		switch code {
		case "invalid_payload":
			c.JSON(http.StatusBadRequest, chatSlotsErro{
				Status:   "erro",
				Mensagem: "Dados incompletos. Envie data, barbeiro_nome e servico_nome.",
			})
		case "barber_not_found":
			c.JSON(http.StatusNotFound, chatSlotsErro{
				Status:   "erro",
				Mensagem: "Barbeiro não encontrado ou inativo.",
			})
		case "service_not_found":
			c.JSON(http.StatusNotFound, chatSlotsErro{
				Status:   "erro",
				Mensagem: "Serviço não encontrado ou inativo.",
			})
		default:
			log.Println("webhook slots error:", err)
			c.JSON(http.StatusInternalServerError, chatSlotsErro{
				Status:   "erro",
				Mensagem: "Tivemos um problema ao buscar horários disponíveis. Tente novamente em alguns instantes.",
			})
		}
		return
	}

	resp := chatSlotsOK{
		Status:   "ok",
		Horarios: slots,
	}
	if len(slots) == 0 {
		resp.Mensagem = "Nenhum horário disponível neste dia."
	}

	c.JSON(http.StatusOK, resp)
}
