package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	usecase "github.com/AgendaPlusBR/scheduling-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db         *gorm.DB
	create     *usecase.CreateAppointment
	update     *usecase.UpdateAppointment
	remove     *usecase.RemoveAppointment
	listAgenda *usecase.ListAgenda
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	update *usecase.UpdateAppointment,
	remove *usecase.RemoveAppointment,
	listAgenda *usecase.ListAgenda,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		create:     create,
		update:     update,
		remove:     remove,
		listAgenda: listAgenda,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ProfessionalID uint   `json:"professional_id"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Notes          string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	ProfessionalID uint   `json:"professional_id"`
	ServiceID      uint   `json:"service_id"`

	StateID uint   `json:"state_id"`
	Reason  string `json:"reason"`

	Completed *bool   `json:"completed"`
	Absent    *bool   `json:"absent"`
	Notes     *string `json:"notes"`
}

type RescheduleRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_appointment_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// resolve o cliente pelo id ou por telefone (criando se necessário)
func (h *AppointmentHandler) resolveClient(
	companyID uint,
	req *CreateAppointmentRequest,
) (*models.Client, error) {

	if req.ClientID != 0 {
		var client models.Client
		err := h.db.
			Where("id = ? AND company_id = ?", req.ClientID, companyID).
			First(&client).Error
		if err != nil {
			return nil, httperr.ErrNotFound("client_not_found")
		}
		return &client, nil
	}

	if req.ClientName == "" || req.ClientPhone == "" {
		return nil, httperr.ErrBusiness("client_required")
	}

	var client models.Client
	err := h.db.
		Where("company_id = ? AND phone = ?", companyID, req.ClientPhone).
		First(&client).Error
	if err == nil {
		return &client, nil
	}

	client = models.Client{
		CompanyID: companyID,
		Name:      req.ClientName,
		Phone:     req.ClientPhone,
		Email:     req.ClientEmail,
	}
	if err := h.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professionalID := req.ProfessionalID
	if professionalID == 0 {
		professionalID = userID
	}

	client, err := h.resolveClient(companyID, &req)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		CompanyID:      companyID,
		ClientID:       client.ID,
		ProfessionalID: professionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.Time,
		Actor:          "professional",
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	err := h.db.
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Preload("State").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("StateEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&ap).Error
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Agenda(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Informe a data (YYYY-MM-DD).")
		return
	}
	date, err := parseDateInCompany(&company, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	professionalID := userID
	if q := c.Query("professional_id"); q != "" {
		id, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		professionalID = uint(id)
	}

	entries, err := h.listAgenda.Execute(c.Request.Context(), companyID, professionalID, date)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ======================================================
// UPDATE + TRANSIÇÕES
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		CompanyID:      companyID,
		AppointmentID:  id,
		Date:           req.Date,
		StartTime:      req.Time,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		NewStateID:     req.StateID,
		Actor:          "professional",
		Reason:         req.Reason,
		Completed:      req.Completed,
		Absent:         req.Absent,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		CompanyID:     companyID,
		AppointmentID: id,
		NewStateID:    domain.StateConfirmed,
		Actor:         "professional",
		Reason:        "confirmed",
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		CompanyID:     companyID,
		AppointmentID: id,
		NewStateID:    domain.StateCancelled,
		Actor:         "professional",
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		CompanyID:     companyID,
		AppointmentID: id,
		Date:          req.Date,
		StartTime:     req.Time,
		NewStateID:    domain.StateRescheduled,
		Actor:         "professional",
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), companyID, id); err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
