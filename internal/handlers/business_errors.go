package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navalha-app/agenda-api/internal/httperr"
)

type businessResponse struct {
	status  int
	message string
}

// Mapeamento das falhas de negócio para o painel. Erros fora da tabela
// são tratados como falha de persistência (500 + log no servidor).
var panelErrors = map[string]businessResponse{
	"invalid_payload":       {http.StatusBadRequest, "Dados incompletos."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_status":        {http.StatusBadRequest, "Status inválido. Use: pendente, confirmado ou cancelado."},
	"invalid_state":         {http.StatusBadRequest, "Agendamento cancelado não pode mudar de status."},
	"time_conflict":         {http.StatusBadRequest, "Horário indisponível para o barbeiro selecionado."},
	"service_not_found":     {http.StatusBadRequest, "Serviços inválidos ou inativos."},
	"barber_not_found":      {http.StatusNotFound, "Barbeiro não encontrado ou inativo."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"forbidden_appointment": {http.StatusForbidden, "Sem permissão para editar este agendamento."},
}

func writePanelError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		if resp, known := panelErrors[code]; known {
			httperr.Write(c, resp.status, code, resp.message)
			return
		}
	}

	log.Println("internal error:", err)
	httperr.Internal(c, "internal_error", "Erro interno.")
}
