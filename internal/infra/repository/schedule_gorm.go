package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// notFound traduz gorm.ErrRecordNotFound para erro de domínio,
// preservando os demais erros de storage.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *ScheduleGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, notFound(err, "company_not_found")
	}
	return &company, nil
}

func (r *ScheduleGormRepository) GetCompanyBySlug(
	ctx context.Context,
	slug string,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&company).Error; err != nil {
		return nil, notFound(err, "company_not_found")
	}
	return &company, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClient(
	ctx context.Context,
	companyID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", clientID, companyID).
		First(&client).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &client, nil
}

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	companyID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Professional / Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetProfessional(
	ctx context.Context,
	companyID uint,
	professionalID uint,
) (*models.User, error) {

	var prof models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&prof).Error; err != nil {
		return nil, notFound(err, "professional_not_found")
	}
	return &prof, nil
}

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	companyID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ? AND company_id = ?", serviceID, companyID).
		First(&svc).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) ProfessionalOffersService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfessionalService{}).
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

// ListBusinessHoursForDay devolve todos os turnos do profissional no
// dia da semana, em ordem de início. Turnos partidos (manhã e noite,
// por exemplo) são linhas independentes; lista vazia = não atende.
func (r *ScheduleGormRepository) ListBusinessHoursForDay(
	ctx context.Context,
	professionalID uint,
	weekday int,
) ([]models.BusinessHour, error) {

	var hours []models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		Order("start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
	professionalID uint,
) ([]models.BusinessHour, error) {

	var hours []models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *ScheduleGormRepository) ListBlockedPeriods(
	ctx context.Context,
	companyID uint,
	from time.Time,
	to time.Time,
) ([]models.BlockedPeriod, error) {

	var periods []models.BlockedPeriod
	if err := r.db.WithContext(ctx).
		Where(
			"company_id = ? AND start_at < ? AND end_at > ?",
			companyID, to, from,
		).
		Order("start_at ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// --------------------------------------------------
// Appointment (reads)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "state_id").
		Where(
			"professional_id = ? AND date = ? AND state_id <> ?",
			professionalID, date, domain.StateCancelled,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleGormRepository) ListAgendaForDay(
	ctx context.Context,
	professionalID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("State").
		Where("professional_id = ? AND date = ?", professionalID, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleGormRepository) HasExactSlot(
	ctx context.Context,
	professionalID uint,
	date time.Time,
	startTime string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"professional_id = ? AND date = ? AND start_time = ? AND state_id <> ?",
			professionalID, date, startTime, domain.StateCancelled,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("StateEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("State").
		First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (writes)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		// Corrida perdida para um insert concorrente no mesmo horário:
		// a constraint de unicidade é a garantia final de não-sobreposição.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.ErrConflict("appointment_already_exists")
		}
		return err
	}
	return nil
}

func (r *ScheduleGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	// O agendamento chega com State/Stages/StateEvents pré-carregados;
	// o autosave de associações do GORM regravaria esses snapshots por
	// cima das escritas feitas na transação (reset de state_id,
	// reinserção de etapas antigas). Só a linha do agendamento é salva.
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return httperr.ErrConflict("appointment_already_exists")
		}
		return err
	}
	return nil
}

func (r *ScheduleGormRepository) CreateStages(
	ctx context.Context,
	stages []models.AppointmentStage,
) error {
	if len(stages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&stages).Error
}

func (r *ScheduleGormRepository) DeleteStages(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.AppointmentStage{}).Error
}

func (r *ScheduleGormRepository) AppendStateEvent(
	ctx context.Context,
	ev *models.AppointmentStateEvent,
) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *ScheduleGormRepository) DeleteStateEvents(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.AppointmentStateEvent{}).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, appointmentID).Error
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
