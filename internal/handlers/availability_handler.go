package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	usecase "github.com/AgendaPlusBR/scheduling-api/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	db      *gorm.DB
	slots   *usecase.FindSlots
	general *usecase.GeneralAvailability
}

func NewAvailabilityHandler(
	db *gorm.DB,
	slots *usecase.FindSlots,
	general *usecase.GeneralAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:      db,
		slots:   slots,
		general: general,
	}
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Slots lista os horários livres do profissional em um dia para um serviço.
// GET /availability/slots?professional_id=&service_id=&date=YYYY-MM-DD
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	professionalID, ok := queryUint(c, "professional_id")
	if !ok {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	date, err := parseDateInCompany(&company, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	result, err := h.slots.Execute(c.Request.Context(), domain.SlotsInput{
		CompanyID:      companyID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// General lista os próximos dias de atendimento do profissional.
// GET /availability/general?professional_id=&from=YYYY-MM-DD
func (h *AvailabilityHandler) General(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	professionalID, ok := queryUint(c, "professional_id")
	if !ok {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		var company models.Company
		if err := h.db.First(&company, companyID).Error; err != nil {
			httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		parsed, err := parseDateInCompany(&company, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		from = parsed
	}

	days, err := h.general.Execute(c.Request.Context(), companyID, professionalID, from)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}
