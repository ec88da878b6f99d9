package schedule

import (
	"context"

	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type FindSlots struct {
	repo  domain.Repository
	cache *cache.Availability
}

func NewFindSlots(repo domain.Repository, cache *cache.Availability) *FindSlots {
	return &FindSlots{repo: repo, cache: cache}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *FindSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) (*domain.DaySlots, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	date := timezone.Midnight(in.Date.In(timezone.Location(company.Timezone)))

	if hit, ok := uc.cache.GetSlots(ctx, in.ProfessionalID, in.ServiceID, date); ok {
		return hit, nil
	}

	// --------------------------------------------------
	// 1. Expediente do dia (ausência não é erro)
	// --------------------------------------------------
	rows, err := uc.repo.ListBusinessHoursForDay(ctx, in.ProfessionalID, domain.ISOWeekday(date))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &domain.DaySlots{Working: false}, nil
	}

	// Turnos partidos são varridos um a um, já ordenados por início.
	windows := make([]domain.DayWindow, 0, len(rows))
	for i := range rows {
		w, err := domain.WindowFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	// --------------------------------------------------
	// 2. Duração total do serviço + frequência de slots
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.CompanyID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(svc.Stages) == 0 {
		return nil, httperr.ErrBusiness("empty_service_definition")
	}
	duration := svc.TotalDurationMin()

	step := company.SlotFrequencyMin
	if step <= 0 {
		step = 30
	}

	// --------------------------------------------------
	// 3. Agendamentos não cancelados + bloqueios do dia
	// --------------------------------------------------
	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.ProfessionalID, date)
	if err != nil {
		return nil, err
	}

	type span struct{ start, end int }
	busy := make([]span, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]
		s, err := domain.MinuteOfDay(ap.StartTime)
		if err != nil {
			continue
		}
		e, err := domain.MinuteOfDay(ap.EndTime)
		if err != nil {
			continue
		}
		busy = append(busy, span{s, e})
	}

	dayOpen := windows[0].Open
	dayClose := windows[0].Close
	for _, w := range windows[1:] {
		if w.Open < dayOpen {
			dayOpen = w.Open
		}
		if w.Close > dayClose {
			dayClose = w.Close
		}
	}
	dayStart := domain.MinuteAt(date, dayOpen)
	dayEnd := domain.MinuteAt(date, dayClose)
	blocked, err := uc.repo.ListBlockedPeriods(ctx, in.CompanyID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Varre a grade de candidatos
	// --------------------------------------------------
	result := &domain.DaySlots{
		Working:   true,
		Morning:   []string{},
		Afternoon: []string{},
		Evening:   []string{},
	}

	for _, window := range windows {
		for c := range domain.Grid(window.Open, window.Close, step) {
			if err := window.FitsService(c, duration); err != nil {
				continue
			}

			end := c + duration

			cStart := domain.MinuteAt(date, c)
			cEnd := domain.MinuteAt(date, end)
			if domain.BlocksWindow(blocked, cStart, cEnd) {
				continue
			}

			conflict := false
			for _, b := range busy {
				if domain.Overlaps(c, end, b.start, b.end) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			bucketSlot(result, c)
		}
	}

	uc.cache.SetSlots(ctx, in.ProfessionalID, in.ServiceID, date, result)

	return result, nil
}

// bucketSlot classifica o candidato aceito por período do dia:
// manhã (<12h), tarde (12h–18h), noite (>=18h ou madrugada <6h).
func bucketSlot(out *domain.DaySlots, startMin int) {
	formatted := domain.Format12h(startMin)

	switch {
	case startMin >= 18*60 || startMin < 6*60:
		out.Evening = append(out.Evening, formatted)
	case startMin < 12*60:
		out.Morning = append(out.Morning, formatted)
	default:
		out.Afternoon = append(out.Afternoon, formatted)
	}
}
