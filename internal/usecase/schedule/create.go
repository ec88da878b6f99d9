package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

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

type CreateAppointmentInput struct {
	CompanyID      uint
	ClientID       uint
	ProfessionalID uint
	ServiceID      uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:mm

	StateID uint // 0 = created
	Actor   string
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	cache *cache.Availability,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	startMin, err := domain.MinuteOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}

	stateID := in.StateID
	if stateID == 0 {
		stateID = domain.StateCreated
	}
	if !domain.IsValidState(stateID) {
		return nil, httperr.ErrNotFound("state_not_found")
	}

	ap := &models.Appointment{}

	// Toda decisão leitura-então-escrita acontece dentro da mesma
	// transação; qualquer falha desfaz agendamento, etapas e histórico.
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1. Referências obrigatórias
		// --------------------------------------------------
		client, err := tx.GetClient(ctx, in.CompanyID, in.ClientID)
		if err != nil {
			return err
		}

		prof, err := tx.GetProfessional(ctx, in.CompanyID, in.ProfessionalID)
		if err != nil {
			return err
		}

		svc, err := tx.GetService(ctx, in.CompanyID, in.ServiceID)
		if err != nil {
			return err
		}

		offers, err := tx.ProfessionalOffersService(ctx, prof.ID, svc.ID)
		if err != nil {
			return err
		}
		if !offers {
			return httperr.ErrBusiness("professional_does_not_offer_service")
		}

		// --------------------------------------------------
		// 2. Linha do tempo das etapas
		// --------------------------------------------------
		start := domain.MinuteAt(date, startMin)
		drafts, total, err := domain.PlanStages(svc.Stages, start)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 3. Horário solicitado é válido e está livre
		// --------------------------------------------------
		taken, err := tx.HasExactSlot(ctx, prof.ID, date, in.StartTime)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrConflict("slot_conflict")
		}

		if err := validateSlot(
			ctx, tx,
			in.CompanyID, prof.ID,
			date, startMin, total, 0,
		); err != nil {
			return err
		}

		// --------------------------------------------------
		// 4. Agendamento + etapas + evento inicial
		// --------------------------------------------------
		*ap = models.Appointment{
			PublicID:       uuid.NewString(),
			CompanyID:      in.CompanyID,
			ClientID:       client.ID,
			ProfessionalID: prof.ID,
			ServiceID:      svc.ID,
			Date:           date,
			StartTime:      in.StartTime,
			EndTime:        domain.FormatMinute(startMin + total),
			StateID:        stateID,
			Notes:          in.Notes,
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		stages := make([]models.AppointmentStage, 0, len(drafts))
		for _, d := range drafts {
			stages = append(stages, models.AppointmentStage{
				AppointmentID:        ap.ID,
				ServiceStageID:       d.ServiceStageID,
				Sequence:             d.Sequence,
				StartsAt:             d.StartsAt,
				EndsAt:               d.EndsAt,
				OccupiesProfessional: d.OccupiesProfessional,
			})
		}
		if err := tx.CreateStages(ctx, stages); err != nil {
			return err
		}

		return tx.AppendStateEvent(ctx, &models.AppointmentStateEvent{
			AppointmentID: ap.ID,
			StateID:       stateID,
			Actor:         in.Actor,
			Reason:        "initial creation",
			NewDate:       in.Date,
			NewTime:       in.StartTime,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.ProfessionalID, date)

	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.ProfessionalID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}
