package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AgendaPlusBR/scheduling-api/internal/audit"
	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	dbpkg "github.com/AgendaPlusBR/scheduling-api/internal/db"
	infraRepo "github.com/AgendaPlusBR/scheduling-api/internal/infra/repository"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// Conexão única: cada conexão sqlite em memória enxerga um banco próprio
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(gdb))
	return gdb
}

// fixture cobre o cenário base dos testes: empresa em São Paulo com
// slots de 30min, um profissional dono, um serviço de 90min em duas
// etapas e expediente de segunda 09:00–17:00 com pausa 13:00–14:00.
type fixture struct {
	db *gorm.DB

	company models.Company
	prof    models.User
	client  models.Client
	service models.Service

	monday time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := newTestDB(t)

	f := &fixture{db: gdb}

	f.company = models.Company{
		Name:             "Clínica Bela Vista",
		Slug:             "bela-vista",
		Timezone:         "America/Sao_Paulo",
		SlotFrequencyMin: 30,
	}
	require.NoError(t, gdb.Create(&f.company).Error)

	f.prof = models.User{
		CompanyID:    f.company.ID,
		Name:         "Patrícia",
		Email:        "patricia@belavista.com",
		PasswordHash: "x",
		Role:         "owner",
	}
	require.NoError(t, gdb.Create(&f.prof).Error)

	f.client = models.Client{
		CompanyID: f.company.ID,
		Name:      "João",
		Phone:     "11999990000",
	}
	require.NoError(t, gdb.Create(&f.client).Error)

	f.service = models.Service{
		CompanyID: f.company.ID,
		Name:      "Coloração",
		Active:    true,
		Stages: []models.ServiceStage{
			{Sequence: 1, DurationMin: 60, OccupiesProfessional: true},
			{Sequence: 2, DurationMin: 30, OccupiesProfessional: false},
		},
	}
	require.NoError(t, gdb.Create(&f.service).Error)

	require.NoError(t, gdb.Create(&models.ProfessionalService{
		ProfessionalID: f.prof.ID,
		ServiceID:      f.service.ID,
	}).Error)

	require.NoError(t, gdb.Create(&models.BusinessHour{
		ProfessionalID: f.prof.ID,
		Weekday:        1,
		StartTime:      "09:00",
		EndTime:        "17:00",
		BreakStart:     "13:00",
		BreakEnd:       "14:00",
	}).Error)

	loc := timezone.Location(f.company.Timezone)
	f.monday = time.Date(2026, 1, 5, 0, 0, 0, 0, loc)

	return f
}

func (f *fixture) createUC() *CreateAppointment {
	repo := infraRepo.NewScheduleGormRepository(f.db)
	return NewCreateAppointment(repo, cache.NewAvailability(nil), audit.NewDispatcher(audit.New(f.db)))
}

func (f *fixture) updateUC() *UpdateAppointment {
	repo := infraRepo.NewScheduleGormRepository(f.db)
	return NewUpdateAppointment(repo, cache.NewAvailability(nil), audit.NewDispatcher(audit.New(f.db)))
}

func (f *fixture) removeUC() *RemoveAppointment {
	repo := infraRepo.NewScheduleGormRepository(f.db)
	return NewRemoveAppointment(repo, cache.NewAvailability(nil), audit.NewDispatcher(audit.New(f.db)))
}

func (f *fixture) findSlotsUC() *FindSlots {
	repo := infraRepo.NewScheduleGormRepository(f.db)
	return NewFindSlots(repo, cache.NewAvailability(nil))
}

func (f *fixture) createInput(date, start string) CreateAppointmentInput {
	return CreateAppointmentInput{
		CompanyID:      f.company.ID,
		ClientID:       f.client.ID,
		ProfessionalID: f.prof.ID,
		ServiceID:      f.service.ID,
		Date:           date,
		StartTime:      start,
		Actor:          "professional",
	}
}
