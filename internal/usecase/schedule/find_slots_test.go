package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

func slotsInput(f *fixture) domain.SlotsInput {
	return domain.SlotsInput{
		CompanyID:      f.company.ID,
		ProfessionalID: f.prof.ID,
		ServiceID:      f.service.ID,
		Date:           f.monday,
	}
}

func TestFindSlotsEmptyDay(t *testing.T) {
	f := newFixture(t)
	uc := f.findSlotsUC()

	got, err := uc.Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)
	require.True(t, got.Working)

	// Serviço de 90min, grade de 30 em 30, expediente 09:00–17:00 com
	// pausa 13:00–14:00: de manhã o último início viável é 11:30 (termina
	// exatamente na pausa); à tarde o último é 15:30 (termina no
	// fechamento). 12:00–13:30 invadem a pausa, 16:00+ passam das 17:00.
	assert.Equal(t, []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	}, got.Morning)
	assert.Equal(t, []string{
		"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	}, got.Afternoon)
	assert.Empty(t, got.Evening)
}

func TestFindSlotsNonWorkingDay(t *testing.T) {
	f := newFixture(t)
	uc := f.findSlotsUC()

	in := slotsInput(f)
	in.Date = f.monday.AddDate(0, 0, 1) // terça sem expediente

	got, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, got.Working)
}

func TestFindSlotsExcludesBookedNeighborhood(t *testing.T) {
	f := newFixture(t)

	_, err := f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "10:00"))
	require.NoError(t, err)

	got, err := f.findSlotsUC().Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)

	// Agendamento 10:00–11:30 com intervalos fechados: qualquer candidato
	// da manhã encosta ou cruza o horário ocupado, inclusive 11:30
	// (início colado no fim não é oferecido).
	assert.Empty(t, got.Morning)
	assert.Equal(t, []string{
		"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	}, got.Afternoon)
}

func TestFindSlotsIgnoresCancelled(t *testing.T) {
	f := newFixture(t)

	ap, err := f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "10:00"))
	require.NoError(t, err)

	_, err = f.updateUC().Execute(context.Background(), UpdateAppointmentInput{
		CompanyID:     f.company.ID,
		AppointmentID: ap.ID,
		NewStateID:    domain.StateCancelled,
		Actor:         "professional",
		Reason:        "client asked",
	})
	require.NoError(t, err)

	got, err := f.findSlotsUC().Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)
	assert.Len(t, got.Morning, 6)
}

func TestFindSlotsRespectsBlockedPeriods(t *testing.T) {
	f := newFixture(t)

	// Bloqueio cobre a manhã inteira
	require.NoError(t, f.db.Create(&models.BlockedPeriod{
		CompanyID: f.company.ID,
		StartAt:   f.monday.Add(8 * time.Hour),
		EndAt:     f.monday.Add(13 * time.Hour),
		Message:   "reforma",
	}).Error)

	got, err := f.findSlotsUC().Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)

	assert.Empty(t, got.Morning)
	assert.Equal(t, []string{
		"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	}, got.Afternoon)
}

func TestFindSlotsEveryOfferedSlotIsCreatable(t *testing.T) {
	f := newFixture(t)

	got, err := f.findSlotsUC().Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)

	// O primeiro horário oferecido de cada período precisa ser aceito
	// pelo fluxo de criação sem nenhum ajuste.
	_, err = f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "09:00"))
	require.NoError(t, err)
	_, err = f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "14:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, got.Morning)
	assert.NotEmpty(t, got.Afternoon)
}

func TestGeneralAvailability(t *testing.T) {
	f := newFixture(t)
	repo := f.findSlotsUC().repo
	uc := NewGeneralAvailability(repo)

	days, err := uc.Execute(context.Background(), f.company.ID, f.prof.ID, f.monday)
	require.NoError(t, err)

	// Só há expediente às segundas: 5 segundas dentro do teto de 30 dias
	require.Len(t, days, 5)
	assert.Equal(t, "2026-01-05", days[0].Date)
	assert.Equal(t, "Segunda-feira, 05/01", days[0].Label)
	require.Len(t, days[0].Shifts, 1)
	assert.Equal(t, "09:00", days[0].Shifts[0].StartTime)
	assert.Equal(t, "17:00", days[0].Shifts[0].EndTime)
	assert.Equal(t, "2026-01-12", days[1].Date)
	assert.Equal(t, "2026-02-02", days[4].Date)
}

func TestFindSlotsSplitShift(t *testing.T) {
	f := newFixture(t)

	// Segundo turno na mesma segunda: expediente partido 18:00–21:00
	require.NoError(t, f.db.Create(&models.BusinessHour{
		ProfessionalID: f.prof.ID,
		Weekday:        1,
		StartTime:      "18:00",
		EndTime:        "21:00",
	}).Error)

	got, err := f.findSlotsUC().Execute(context.Background(), slotsInput(f))
	require.NoError(t, err)
	require.True(t, got.Working)

	// O turno diurno continua inteiro e o noturno entra na grade;
	// 19:30 termina exatamente no fechamento do segundo turno.
	assert.Len(t, got.Morning, 6)
	assert.Len(t, got.Afternoon, 4)
	assert.Equal(t, []string{
		"06:00 PM", "06:30 PM", "07:00 PM", "07:30 PM",
	}, got.Evening)

	// Um horário do segundo turno é aceito pelo fluxo de criação e o
	// vão entre os turnos segue rejeitado.
	_, err = f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "18:00"))
	require.NoError(t, err)

	_, err = f.createUC().Execute(context.Background(), f.createInput("2026-01-05", "17:00"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestGeneralAvailabilityListsSplitShifts(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.db.Create(&models.BusinessHour{
		ProfessionalID: f.prof.ID,
		Weekday:        1,
		StartTime:      "18:00",
		EndTime:        "21:00",
	}).Error)

	repo := f.findSlotsUC().repo
	uc := NewGeneralAvailability(repo)

	days, err := uc.Execute(context.Background(), f.company.ID, f.prof.ID, f.monday)
	require.NoError(t, err)
	require.NotEmpty(t, days)

	require.Len(t, days[0].Shifts, 2)
	assert.Equal(t, "09:00", days[0].Shifts[0].StartTime)
	assert.Equal(t, "17:00", days[0].Shifts[0].EndTime)
	assert.Equal(t, "18:00", days[0].Shifts[1].StartTime)
	assert.Equal(t, "21:00", days[0].Shifts[1].EndTime)
}
