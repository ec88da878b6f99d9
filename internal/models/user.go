package models

import "time"

// Profissional com login; é quem atende os agendamentos
type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Associação profissional x serviço oferecido
type ProfessionalService struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex:uniq_professional_service" json:"professional_id"`
	ServiceID      uint `gorm:"uniqueIndex:uniq_professional_service" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}
