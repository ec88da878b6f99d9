package models

import "time"

// Etapa concreta de um agendamento. A flag OccupiesProfessional é copiada
// do ServiceStage na criação, para que edições futuras do serviço não
// alterem agendamentos já feitos.
type AppointmentStage struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceStageID uint `json:"service_stage_id"`
	Sequence       int  `gorm:"not null" json:"sequence"`

	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	// Sem default no banco: com default o GORM omite o zero value do
	// INSERT e um false explícito viraria true.
	OccupiesProfessional bool `json:"occupies_professional"`

	CreatedAt time.Time `json:"created_at"`
}
