package schedule

import "time"

type SlotsInput struct {
	CompanyID      uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

// DaySlots agrupa os candidatos aceitos por período do dia, já
// formatados em relógio de 12 horas. Working=false sinaliza que o
// profissional não atende nesse dia (não é erro).
type DaySlots struct {
	Working   bool     `json:"working"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
}

// DayShift é um turno de expediente dentro de um dia. Um dia pode ter
// mais de um turno (expediente partido).
type DayShift struct {
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
	RoomID     uint   `json:"room_id"`
}

// DayAvailability resume um dia útil futuro do profissional.
type DayAvailability struct {
	Date   string     `json:"date"`
	Label  string     `json:"label"`
	Shifts []DayShift `json:"shifts"`
}
