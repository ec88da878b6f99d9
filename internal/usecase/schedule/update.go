package schedule

import (
	"context"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/audit"
	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type UpdateAppointmentInput struct {
	CompanyID     uint
	AppointmentID uint

	Date           string // vazio = mantém
	StartTime      string // vazio = mantém
	ProfessionalID uint   // 0 = mantém
	ServiceID      uint   // 0 = mantém

	NewStateID uint // 0 = sem transição
	Actor      string
	Reason     string

	Completed *bool
	Absent    *bool
	Notes     *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	cache *cache.Availability,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(company.Timezone)

	var (
		resultID uint
		oldProf  uint
		oldDate  time.Time
		newProf  uint
		newDate  time.Time
		action   = "appointment_updated"
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if ap.CompanyID != in.CompanyID {
			return httperr.ErrNotFound("appointment_not_found")
		}

		oldProf = ap.ProfessionalID
		oldDate = ap.Date
		prevDate := ap.Date.Format("2006-01-02")
		prevTime := ap.StartTime

		// --------------------------------------------------
		// 1. Merge simples de campos
		// --------------------------------------------------
		profChanged := false
		if in.ProfessionalID != 0 && in.ProfessionalID != ap.ProfessionalID {
			if _, err := tx.GetProfessional(ctx, in.CompanyID, in.ProfessionalID); err != nil {
				return err
			}
			ap.ProfessionalID = in.ProfessionalID
			profChanged = true
		}
		svcChanged := false
		if in.ServiceID != 0 && in.ServiceID != ap.ServiceID {
			if _, err := tx.GetService(ctx, in.CompanyID, in.ServiceID); err != nil {
				return err
			}
			ap.ServiceID = in.ServiceID
			svcChanged = true
		}
		if profChanged || svcChanged {
			offers, err := tx.ProfessionalOffersService(ctx, ap.ProfessionalID, ap.ServiceID)
			if err != nil {
				return err
			}
			if !offers {
				return httperr.ErrBusiness("professional_does_not_offer_service")
			}
		}
		if in.Completed != nil {
			ap.Completed = *in.Completed
		}
		if in.Absent != nil {
			ap.Absent = *in.Absent
		}
		if in.Notes != nil {
			ap.Notes = *in.Notes
		}

		// Trocar o profissional ou o serviço muda a agenda afetada
		// tanto quanto trocar a hora, então passa pela mesma
		// revalidação (e, no caso do serviço, recria as etapas).
		timeChanged := in.Date != "" || in.StartTime != "" || profChanged || svcChanged

		newDateStr := prevDate
		newTimeStr := prevTime
		if in.Date != "" {
			newDateStr = in.Date
		}
		if in.StartTime != "" {
			newTimeStr = in.StartTime
		}

		// --------------------------------------------------
		// 2. Sem mudança de estado: só persiste o merge.
		// Mudança de horário exige a transição de reagendamento,
		// que revalida o slot e recria as etapas. Reagendado →
		// reagendado é uma transição válida e segue para o passo 3.
		// --------------------------------------------------
		sameState := in.NewStateID == ap.StateID
		if in.NewStateID == 0 ||
			(sameState && in.NewStateID != domain.StateRescheduled) {
			if timeChanged {
				return httperr.ErrBusiness("reschedule_required")
			}

			if err := tx.SaveAppointment(ctx, ap); err != nil {
				return err
			}

			resultID = ap.ID
			newProf = ap.ProfessionalID
			newDate = ap.Date
			return nil
		}

		// --------------------------------------------------
		// 3. Transição de estado + evento no histórico
		// --------------------------------------------------
		if err := domain.CanTransition(ap.StateID, in.NewStateID); err != nil {
			return err
		}

		// Confirmar ou cancelar não move o agendamento; um horário no
		// payload seria descartado e o histórico mentiria sobre ele.
		if timeChanged && in.NewStateID != domain.StateRescheduled {
			return httperr.ErrBusiness("reschedule_required")
		}

		if err := tx.AppendStateEvent(ctx, &models.AppointmentStateEvent{
			AppointmentID: ap.ID,
			StateID:       in.NewStateID,
			Actor:         in.Actor,
			Reason:        in.Reason,
			PreviousDate:  prevDate,
			PreviousTime:  prevTime,
			NewDate:       newDateStr,
			NewTime:       newTimeStr,
		}); err != nil {
			return err
		}

		ap.StateID = in.NewStateID

		switch in.NewStateID {
		case domain.StateCancelled:
			// Cancelamento nunca revalida horário — o slot é liberado
			// imediatamente para novos agendamentos.
			action = "appointment_cancelled"

		case domain.StateRescheduled:
			action = "appointment_rescheduled"

			if timeChanged {
				d, err := time.ParseInLocation("2006-01-02", newDateStr, loc)
				if err != nil {
					return httperr.ErrBusiness("invalid_date")
				}
				startMin, err := domain.MinuteOfDay(newTimeStr)
				if err != nil {
					return err
				}

				svc, err := tx.GetService(ctx, in.CompanyID, ap.ServiceID)
				if err != nil {
					return err
				}

				start := domain.MinuteAt(d, startMin)
				drafts, total, err := domain.PlanStages(svc.Stages, start)
				if err != nil {
					return err
				}

				if err := validateSlot(
					ctx, tx,
					in.CompanyID, ap.ProfessionalID,
					d, startMin, total, ap.ID,
				); err != nil {
					return err
				}

				// Etapas são recriadas por inteiro no novo horário
				if err := tx.DeleteStages(ctx, ap.ID); err != nil {
					return err
				}
				stages := make([]models.AppointmentStage, 0, len(drafts))
				for _, draft := range drafts {
					stages = append(stages, models.AppointmentStage{
						AppointmentID:        ap.ID,
						ServiceStageID:       draft.ServiceStageID,
						Sequence:             draft.Sequence,
						StartsAt:             draft.StartsAt,
						EndsAt:               draft.EndsAt,
						OccupiesProfessional: draft.OccupiesProfessional,
					})
				}
				if err := tx.CreateStages(ctx, stages); err != nil {
					return err
				}

				ap.Date = d
				ap.StartTime = newTimeStr
				ap.EndTime = domain.FormatMinute(startMin + total)
			}
		}

		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		resultID = ap.ID
		newProf = ap.ProfessionalID
		newDate = ap.Date
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, oldProf, oldDate)
	if newProf != oldProf || !newDate.Equal(oldDate) {
		uc.cache.InvalidateDay(ctx, newProf, newDate)
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &newProf,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &resultID,
	})

	return uc.repo.GetAppointment(ctx, resultID)
}
