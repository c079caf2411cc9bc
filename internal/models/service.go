package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name          string `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	DurationMin   int    `gorm:"not null" json:"duracao_minutos"`
	PriceCentavos int    `gorm:"default:0" json:"preco_centavos"`
	Active        bool   `gorm:"default:true" json:"ativo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
