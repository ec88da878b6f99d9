package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/config"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE companies
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}

// Migrate cria o schema e semeia a tabela fixa de estados.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Room{},
		&models.Service{},
		&models.ServiceStage{},
		&models.ProfessionalService{},
		&models.BusinessHour{},
		&models.BlockedPeriod{},
		&models.Client{},
		&models.State{},
		&models.Appointment{},
		&models.AppointmentStage{},
		&models.AppointmentStateEvent{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return SeedStates(db)
}

// SeedStates garante as linhas de lookup de estado (idempotente).
func SeedStates(db *gorm.DB) error {
	for _, id := range []uint{
		domain.StateCreated,
		domain.StateConfirmed,
		domain.StateCancelled,
		domain.StateRescheduled,
	} {
		state := models.State{ID: id, Name: domain.StateName(id)}
		if err := db.Where("id = ?", id).FirstOrCreate(&state).Error; err != nil {
			return err
		}
	}
	return nil
}
