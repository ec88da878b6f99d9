package models

import "time"

// Etapa ordenada de um serviço (ex: preparo, atendimento, finalização)
type ServiceStage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `gorm:"uniqueIndex:uniq_service_stage_seq" json:"service_id"`

	Sequence    int `gorm:"uniqueIndex:uniq_service_stage_seq;not null" json:"sequence"`
	DurationMin int `gorm:"not null" json:"duration_min"`

	// Se false, o profissional fica livre durante a etapa (ex: tempo de
	// pausa química). Sem default no banco para o false ser gravado fiel.
	OccupiesProfessional bool `json:"occupies_professional"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
