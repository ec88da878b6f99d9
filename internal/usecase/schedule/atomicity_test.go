package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgendaPlusBR/scheduling-api/internal/audit"
	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	infraRepo "github.com/AgendaPlusBR/scheduling-api/internal/infra/repository"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

var errBoom = errors.New("boom")

// failingRepo injeta uma falha na última escrita do fluxo de criação
// para provar que a transação desfaz agendamento e etapas já gravados.
type failingRepo struct {
	domain.Repository
}

func (r *failingRepo) AppendStateEvent(
	ctx context.Context,
	ev *models.AppointmentStateEvent,
) error {
	return errBoom
}

func (r *failingRepo) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.Repository.Transaction(ctx, func(tx domain.Repository) error {
		return fn(&failingRepo{Repository: tx})
	})
}

func TestCreateAppointmentRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)

	repo := &failingRepo{Repository: infraRepo.NewScheduleGormRepository(f.db)}
	uc := NewCreateAppointment(repo, cache.NewAvailability(nil), audit.NewDispatcher(audit.New(f.db)))

	_, err := uc.Execute(context.Background(), f.createInput("2026-01-05", "10:00"))
	require.ErrorIs(t, err, errBoom)

	var apCount, stageCount, eventCount int64
	f.db.Model(&models.Appointment{}).Count(&apCount)
	f.db.Model(&models.AppointmentStage{}).Count(&stageCount)
	f.db.Model(&models.AppointmentStateEvent{}).Count(&eventCount)

	assert.Zero(t, apCount, "appointment must be rolled back")
	assert.Zero(t, stageCount, "stages must be rolled back")
	assert.Zero(t, eventCount)

	// O horário continua livre depois do rollback
	_, err = f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "10:00"))
	require.NoError(t, err)
}
