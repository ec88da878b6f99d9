package schedule

import (
	"context"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/audit"
	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
)

type RemoveAppointment struct {
	repo  domain.Repository
	cache *cache.Availability
	audit *audit.Dispatcher
}

func NewRemoveAppointment(
	repo domain.Repository,
	cache *cache.Availability,
	audit *audit.Dispatcher,
) *RemoveAppointment {
	return &RemoveAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute remove o agendamento em cascata: etapas, histórico e por fim
// o registro, tudo na mesma transação.
func (uc *RemoveAppointment) Execute(
	ctx context.Context,
	companyID uint,
	appointmentID uint,
) error {

	var (
		professionalID uint
		date           time.Time
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		if ap.CompanyID != companyID {
			return httperr.ErrNotFound("appointment_not_found")
		}

		professionalID = ap.ProfessionalID
		date = ap.Date

		if err := tx.DeleteStages(ctx, ap.ID); err != nil {
			return err
		}
		if err := tx.DeleteStateEvents(ctx, ap.ID); err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, ap.ID)
	})
	if err != nil {
		return err
	}

	uc.cache.InvalidateDay(ctx, professionalID, date)

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    &professionalID,
		Action:    "appointment_removed",
		Entity:    "appointment",
		EntityID:  &appointmentID,
	})

	return nil
}
