package schedule

import (
	"context"
	"time"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
)

// validateSlot aplica ao horário solicitado as mesmas checagens usadas
// por candidato na busca de disponibilidade: expediente do dia, pausa,
// bloqueios da empresa e colisão com agendamentos não cancelados.
// excludeID ignora o próprio agendamento em um reagendamento.
func validateSlot(
	ctx context.Context,
	repo domain.Repository,
	companyID uint,
	professionalID uint,
	date time.Time,
	startMin int,
	durationMin int,
	excludeID uint,
) error {

	rows, err := repo.ListBusinessHoursForDay(ctx, professionalID, domain.ISOWeekday(date))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return httperr.ErrBusiness("professional_not_working")
	}

	// O horário precisa caber inteiro em um dos turnos do dia. Quando
	// nenhum serve, o erro reportado é o do turno que contém o início
	// (pausa recortada, por exemplo); fora de todos = fora do expediente.
	fitErr := httperr.ErrBusiness("outside_business_hours")
	for i := range rows {
		window, err := domain.WindowFromRow(&rows[i])
		if err != nil {
			return err
		}
		e := window.FitsService(startMin, durationMin)
		if e == nil {
			fitErr = nil
			break
		}
		if startMin >= window.Open && startMin < window.Close {
			fitErr = e
		}
	}
	if fitErr != nil {
		return fitErr
	}

	start := domain.MinuteAt(date, startMin)
	end := start.Add(time.Duration(durationMin) * time.Minute)

	blocked, err := repo.ListBlockedPeriods(ctx, companyID, start, end)
	if err != nil {
		return err
	}
	if domain.BlocksWindow(blocked, start, end) {
		return httperr.ErrBusiness("period_blocked")
	}

	existing, err := repo.ListAppointmentsForDay(ctx, professionalID, date)
	if err != nil {
		return err
	}

	endMin := startMin + durationMin
	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID {
			continue
		}
		apStart, err := domain.MinuteOfDay(ap.StartTime)
		if err != nil {
			continue
		}
		apEnd, err := domain.MinuteOfDay(ap.EndTime)
		if err != nil {
			continue
		}
		if domain.Overlaps(startMin, endMin, apStart, apEnd) {
			return httperr.ErrConflict("slot_conflict")
		}
	}

	return nil
}
