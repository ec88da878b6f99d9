package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	usecase "github.com/AgendaPlusBR/scheduling-api/internal/usecase/schedule"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db      *gorm.DB
	slots   *usecase.FindSlots
	general *usecase.GeneralAvailability
	create  *usecase.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	slots *usecase.FindSlots,
	general *usecase.GeneralAvailability,
	create *usecase.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:      db,
		slots:   slots,
		general: general,
		create:  create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	ProfessionalID uint   `json:"professional_id"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) companyBySlug(c *gin.Context) (*models.Company, bool) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return nil, false
	}
	return &company, true
}

// profissional padrão da vitrine pública: o dono da conta
func (h *PublicHandler) defaultProfessional(companyID uint) (*models.User, error) {
	var prof models.User
	err := h.db.
		Where("company_id = ? AND role = ?", companyID, "owner").
		First(&prof).Error
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (h *PublicHandler) resolveProfessional(
	c *gin.Context,
	company *models.Company,
	requested uint,
) (uint, bool) {

	if requested != 0 {
		var prof models.User
		err := h.db.
			Where("id = ? AND company_id = ?", requested, company.ID).
			First(&prof).Error
		if err != nil {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return 0, false
		}
		return prof.ID, true
	}

	prof, err := h.defaultProfessional(company.ID)
	if err != nil {
		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
		return 0, false
	}
	return prof.ID, true
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("company_id = ? AND active = true", company.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"services": services,
	})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	type professionalDTO struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var pros []professionalDTO
	err := h.db.
		Model(&models.User{}).
		Where("company_id = ?", company.ID).
		Order("name ASC").
		Find(&pros).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, pros)
}

////////////////////////////////////////////////////////
// DISPONIBILIDADE (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	serviceID, okSvc := queryUint(c, "service_id")
	if !okSvc {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	requested, _ := queryUint(c, "professional_id")
	professionalID, ok := h.resolveProfessional(c, company, requested)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := parseDateInCompany(company, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.SlotsInput{
		CompanyID:      company.ID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *PublicHandler) AvailableDays(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	requested, _ := queryUint(c, "professional_id")
	professionalID, ok := h.resolveProfessional(c, company, requested)
	if !ok {
		return
	}

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDateInCompany(company, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		from = parsed
	}

	days, err := h.general.Execute(c.Request.Context(), company.ID, professionalID, from)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

////////////////////////////////////////////////////////
// CREATE (PÚBLICO → REUSA O USE CASE PRIVADO)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	company, ok := h.companyBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	professionalID, ok := h.resolveProfessional(c, company, req.ProfessionalID)
	if !ok {
		return
	}

	var client models.Client
	err := h.db.
		Where("company_id = ? AND phone = ?", company.ID, req.ClientPhone).
		First(&client).Error
	if err != nil {
		client = models.Client{
			CompanyID: company.ID,
			Name:      req.ClientName,
			Phone:     req.ClientPhone,
			Email:     req.ClientEmail,
		}
		if err := h.db.Create(&client).Error; err != nil {
			httperr.Internal(c, "failed_to_create_client", "Erro ao registrar cliente.")
			return
		}
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		CompanyID:      company.ID,
		ClientID:       client.ID,
		ProfessionalID: professionalID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.Time,
		Actor:          "client",
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"public_id":  ap.PublicID,
		"date":       ap.Date.Format("2006-01-02"),
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
		"state":      domain.StateName(ap.StateID),
	})
}
