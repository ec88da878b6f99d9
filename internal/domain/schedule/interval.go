package schedule

import (
	"fmt"
	"iter"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
)

// ===============================
// Minutos do dia
// ===============================

// Toda hora-do-dia é normalizada para minutos desde a meia-noite na
// borda do modelo de calendário. A aritmética de intervalos nunca
// precisa saber de onde o valor veio ("15:04", time.Time, etc).

// MinuteOfDay converte "15:04" em minutos desde a meia-noite.
func MinuteOfDay(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinute converte minutos desde a meia-noite em "15:04".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Format12h formata minutos desde a meia-noite em relógio de 12 horas.
func Format12h(m int) string {
	h := m / 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m%60, period)
}

// MinuteAt posiciona um minuto-do-dia na data informada.
func MinuteAt(date time.Time, minute int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minute/60, minute%60, 0, 0,
		date.Location(),
	)
}

// ===============================
// Intervalos
// ===============================

// Overlaps usa semântica de intervalo fechado: extremos encostados
// contam como sobreposição (aStart <= bEnd && bStart <= aEnd). Esse
// comportamento é proposital e precisa ser mantido — agendamentos
// "colados" são rejeitados.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// Grid gera os candidatos de início entre start (inclusivo) e end
// (exclusivo), de step em step minutos. A sequência é finita, lazy e
// pode ser percorrida mais de uma vez.
func Grid(start, end, step int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if step <= 0 {
			return
		}
		for c := start; c < end; c += step {
			if !yield(c) {
				return
			}
		}
	}
}
