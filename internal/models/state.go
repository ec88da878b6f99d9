package models

// Estado de ciclo de vida do agendamento (tabela de lookup fixa)
type State struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:30;uniqueIndex;not null" json:"name"`
}
