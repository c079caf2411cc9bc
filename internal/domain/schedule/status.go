package schedule

import "github.com/navalha-app/agenda-api/internal/httperr"

// ===============================
// Appointment Status / Origin
// ===============================

type Status string

const (
	StatusPending   Status = "pendente"
	StatusConfirmed Status = "confirmado"
	StatusCancelled Status = "cancelado"
)

type Origin string

const (
	OriginManual Origin = "manual"
	OriginChat   Origin = "whatsapp"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransition valida mudanças de status feitas pelo painel.
// Cancelamento libera o horário; voltar de cancelado pularia a
// checagem de conflito, então não é permitido.
func CanTransition(from, to Status) error {
	if !to.IsValid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if from == StatusCancelled && to != StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// DefaultChatStatus resolve o status inicial de agendamentos vindos do bot
func DefaultChatStatus(configured string) Status {
	s := Status(configured)
	if s == StatusPending || s == StatusConfirmed {
		return s
	}
	return StatusConfirmed
}
