package models

import "time"

type Appointment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex" json:"public_id"`

	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint `gorm:"uniqueIndex:uniq_professional_slot,where:state_id <> 3" json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Data do atendimento (meia-noite no fuso da empresa) + hora "15:04".
	// EndTime é derivado da última etapa, nunca editado diretamente.
	Date      time.Time `gorm:"uniqueIndex:uniq_professional_slot,where:state_id <> 3" json:"date"`
	StartTime string    `gorm:"size:5;uniqueIndex:uniq_professional_slot,where:state_id <> 3" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	StateID uint  `json:"state_id"`
	State   State `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"state"`

	Completed bool `gorm:"default:false" json:"completed"`
	Absent    bool `gorm:"default:false" json:"absent"`

	Notes string `gorm:"size:255" json:"notes"`

	Stages      []AppointmentStage      `gorm:"constraint:OnDelete:CASCADE;" json:"stages"`
	StateEvents []AppointmentStateEvent `gorm:"constraint:OnDelete:CASCADE;" json:"state_events"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
