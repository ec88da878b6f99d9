package schedule

import (
	"context"
	"fmt"
	"time"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

const (
	maxGeneralDays = 5
	// Teto de segurança da varredura dia a dia
	generalLookahead = 30
)

var ptWeekdays = map[time.Weekday]string{
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

type GeneralAvailability struct {
	repo domain.Repository
}

func NewGeneralAvailability(repo domain.Repository) *GeneralAvailability {
	return &GeneralAvailability{repo: repo}
}

// Execute devolve até 5 próximos dias úteis do profissional a partir de
// fromDate (inclusive; zero = hoje no fuso da empresa), pulando dias sem
// expediente cadastrado.
func (uc *GeneralAvailability) Execute(
	ctx context.Context,
	companyID uint,
	professionalID uint,
	fromDate time.Time,
) ([]domain.DayAvailability, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetProfessional(ctx, companyID, professionalID); err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)
	if fromDate.IsZero() {
		fromDate = timezone.NowIn(company.Timezone)
	}
	day := timezone.Midnight(fromDate.In(loc))

	days := make([]domain.DayAvailability, 0, maxGeneralDays)

	for offset := 0; offset < generalLookahead && len(days) < maxGeneralDays; offset++ {
		current := day.AddDate(0, 0, offset)

		rows, err := uc.repo.ListBusinessHoursForDay(ctx, professionalID, domain.ISOWeekday(current))
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			continue
		}

		shifts := make([]domain.DayShift, 0, len(rows))
		for i := range rows {
			bh := &rows[i]
			shifts = append(shifts, domain.DayShift{
				StartTime:  bh.StartTime,
				EndTime:    bh.EndTime,
				BreakStart: bh.BreakStart,
				BreakEnd:   bh.BreakEnd,
				RoomID:     bh.RoomID,
			})
		}

		days = append(days, domain.DayAvailability{
			Date:   current.Format("2006-01-02"),
			Label:  dayLabel(current),
			Shifts: shifts,
		})
	}

	return days, nil
}

func dayLabel(t time.Time) string {
	return fmt.Sprintf("%s, %s", ptWeekdays[t.Weekday()], t.Format("02/01"))
}
