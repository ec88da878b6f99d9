package models

import "time"

// Registro imutável de transição de estado. Nunca é atualizado nem
// removido individualmente — correções geram um novo evento.
type AppointmentStateEvent struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	StateID uint  `json:"state_id"`
	State   State `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"state"`

	Actor  string `gorm:"size:100" json:"actor"`
	Reason string `gorm:"size:255" json:"reason"`

	// Snapshot de data/hora anterior e nova, para auditoria
	PreviousDate string `gorm:"size:10" json:"previous_date"`
	PreviousTime string `gorm:"size:5" json:"previous_time"`
	NewDate      string `gorm:"size:10" json:"new_date"`
	NewTime      string `gorm:"size:5" json:"new_time"`

	CreatedAt time.Time `json:"created_at"`
}
