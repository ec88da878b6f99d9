package models

import "time"

type Service struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	Stages []ServiceStage `gorm:"constraint:OnDelete:CASCADE;" json:"stages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalDurationMin soma a duração de todas as etapas do serviço
func (s *Service) TotalDurationMin() int {
	total := 0
	for _, st := range s.Stages {
		total += st.DurationMin
	}
	return total
}
