package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID             uuid.UUID `json:"id"`
	StartTime      time.Time `json:"data_hora_inicio"`
	EndTime        time.Time `json:"data_hora_fim"`
	Status         string    `json:"status"`
	Origin         string    `json:"origem"`
	BarberID       uuid.UUID `json:"barbeiro_id"`
	BarberName     string    `json:"barbeiro_nome"`
	ClientName     string    `json:"cliente_nome"`
	ClientWhatsapp string    `json:"cliente_whatsapp"`
	ServiceName    string    `json:"servico_nome"`
	DurationMin    int       `json:"duracao_minutos"`
	PriceCentavos  int       `json:"preco_centavos"`
}
