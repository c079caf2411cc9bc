package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID uuid.UUID `gorm:"type:uuid;index" json:"barbeiro_id"`
	Barber   Barber    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbeiro"`

	ClientID uuid.UUID `gorm:"type:uuid;index" json:"cliente_id"`
	Client   Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cliente"`

	ServiceID uuid.UUID `gorm:"type:uuid;index" json:"servico_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"servico"`

	StartTime time.Time `gorm:"index" json:"data_hora_inicio"`
	EndTime   time.Time `json:"data_hora_fim"`

	// pendente | confirmado | cancelado
	Status string `gorm:"size:20;default:'pendente'" json:"status"`

	// manual | whatsapp
	Origin string `gorm:"size:20;default:'manual'" json:"origem"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
