package schedule

import (
	"context"
	"time"

	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetCompanyBySlug(
		ctx context.Context,
		slug string,
	) (*models.Company, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		companyID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		companyID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Professional / Service --------
	GetProfessional(
		ctx context.Context,
		companyID uint,
		professionalID uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		companyID uint,
		serviceID uint,
	) (*models.Service, error)

	ProfessionalOffersService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (bool, error)

	// -------- Calendar --------
	// ListBusinessHoursForDay devolve zero ou mais turnos do
	// profissional no dia da semana, em ordem de início.
	ListBusinessHoursForDay(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) ([]models.BusinessHour, error)

	ListBusinessHours(
		ctx context.Context,
		professionalID uint,
	) ([]models.BusinessHour, error)

	ListBlockedPeriods(
		ctx context.Context,
		companyID uint,
		from time.Time,
		to time.Time,
	) ([]models.BlockedPeriod, error)

	// -------- Appointment (reads) --------
	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		date time.Time,
	) ([]models.Appointment, error)

	ListAgendaForDay(
		ctx context.Context,
		professionalID uint,
		date time.Time,
	) ([]models.Appointment, error)

	HasExactSlot(
		ctx context.Context,
		professionalID uint,
		date time.Time,
		startTime string,
	) (bool, error)

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// -------- Appointment (writes) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreateStages(
		ctx context.Context,
		stages []models.AppointmentStage,
	) error

	DeleteStages(
		ctx context.Context,
		appointmentID uint,
	) error

	AppendStateEvent(
		ctx context.Context,
		ev *models.AppointmentStateEvent,
	) error

	DeleteStateEvents(
		ctx context.Context,
		appointmentID uint,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Unit of work --------
	// Transaction executa fn dentro de uma única transação; o Repository
	// recebido por fn enxerga apenas dados visíveis nessa transação e
	// qualquer erro desfaz todas as escritas.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
