package models

import "time"

// Bloqueio absoluto de agenda da empresa (feriado, reforma, evento)
type BlockedPeriod struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null;index" json:"end_at"`
	Message string    `gorm:"size:255" json:"message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
