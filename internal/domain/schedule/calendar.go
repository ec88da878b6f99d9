package schedule

import (
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

// ===============================
// Calendário semanal
// ===============================

// ISOWeekday devolve o dia da semana com numeração ISO: 1=segunda,
// 7=domingo. Mantém a aritmética semanal contígua em 1–7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayWindow é o expediente de um dia já normalizado para minutos.
type DayWindow struct {
	Open     int
	Close    int
	HasBreak bool
	BreakSta int
	BreakEnd int
	RoomID   uint
}

// WindowFromRow normaliza uma linha de expediente para DayWindow.
func WindowFromRow(bh *models.BusinessHour) (DayWindow, error) {
	open, err := MinuteOfDay(bh.StartTime)
	if err != nil {
		return DayWindow{}, err
	}
	close, err := MinuteOfDay(bh.EndTime)
	if err != nil {
		return DayWindow{}, err
	}

	w := DayWindow{Open: open, Close: close, RoomID: bh.RoomID}

	if bh.BreakStart != "" && bh.BreakEnd != "" {
		bs, err := MinuteOfDay(bh.BreakStart)
		if err != nil {
			return DayWindow{}, err
		}
		be, err := MinuteOfDay(bh.BreakEnd)
		if err != nil {
			return DayWindow{}, err
		}
		w.HasBreak = true
		w.BreakSta = bs
		w.BreakEnd = be
	}

	return w, nil
}

// FitsService valida um candidato de início contra o expediente do dia.
// O serviço pode terminar exatamente no fechamento; pausa nunca é
// "recortada" — qualquer interseção rejeita o candidato inteiro.
func (w DayWindow) FitsService(startMin, durationMin int) error {
	end := startMin + durationMin

	if startMin < w.Open || end > w.Close {
		return httperr.ErrBusiness("outside_business_hours")
	}

	if w.HasBreak && startMin < w.BreakEnd && end > w.BreakSta {
		return httperr.ErrBusiness("inside_break")
	}

	return nil
}

// ValidateWeekRows valida linhas de expediente no momento da escrita:
// horários bem formados, pausa contida no expediente e ausência de
// sobreposição entre linhas do mesmo profissional/dia.
func ValidateWeekRows(rows []models.BusinessHour) error {
	type span struct{ open, close int }
	byDay := make(map[int][]span)

	for i := range rows {
		bh := &rows[i]

		if bh.Weekday < 1 || bh.Weekday > 7 {
			return httperr.ErrBusiness("invalid_weekday")
		}

		w, err := WindowFromRow(bh)
		if err != nil {
			return err
		}
		if w.Open >= w.Close {
			return httperr.ErrBusiness("invalid_business_hours")
		}
		if w.HasBreak {
			if w.BreakSta >= w.BreakEnd {
				return httperr.ErrBusiness("invalid_break")
			}
			if w.BreakSta < w.Open || w.BreakEnd > w.Close {
				return httperr.ErrBusiness("break_outside_business_hours")
			}
		}

		for _, other := range byDay[bh.Weekday] {
			if Overlaps(w.Open, w.Close, other.open, other.close) {
				return httperr.ErrBusiness("overlapping_business_hours")
			}
		}
		byDay[bh.Weekday] = append(byDay[bh.Weekday], span{w.Open, w.Close})
	}

	return nil
}

// ===============================
// Bloqueios de agenda
// ===============================

// IsBlocked verifica se o instante cai dentro de algum bloqueio.
func IsBlocked(periods []models.BlockedPeriod, instant time.Time) bool {
	for i := range periods {
		p := &periods[i]
		if !instant.Before(p.StartAt) && instant.Before(p.EndAt) {
			return true
		}
	}
	return false
}

// BlocksWindow verifica se a janela [start, end) intersecta algum bloqueio.
func BlocksWindow(periods []models.BlockedPeriod, start, end time.Time) bool {
	for i := range periods {
		p := &periods[i]
		if start.Before(p.EndAt) && end.After(p.StartAt) {
			return true
		}
	}
	return false
}

// ValidateBlockedPeriod valida um novo bloqueio contra os existentes.
func ValidateBlockedPeriod(p *models.BlockedPeriod, existing []models.BlockedPeriod) error {
	if !p.StartAt.Before(p.EndAt) {
		return httperr.ErrBusiness("invalid_blocked_period")
	}
	for i := range existing {
		e := &existing[i]
		if e.ID == p.ID {
			continue
		}
		if p.StartAt.Before(e.EndAt) && p.EndAt.After(e.StartAt) {
			return httperr.ErrConflict("overlapping_blocked_period")
		}
	}
	return nil
}
