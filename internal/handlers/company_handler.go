package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
	"github.com/AgendaPlusBR/scheduling-api/internal/timezone"
)

type CompanyHandler struct {
	db *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{db: db}
}

type UpdateCompanyConfigRequest struct {
	SlotFrequencyMin *int    `json:"slot_frequency_min"`
	Timezone         *string `json:"timezone"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
}

func (h *CompanyHandler) GetMeCompany(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateMeCompany(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	var req UpdateCompanyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.SlotFrequencyMin != nil {
		if *req.SlotFrequencyMin <= 0 {
			httperr.BadRequest(c, "invalid_slot_frequency", "Frequência de slots inválida.")
			return
		}
		company.SlotFrequencyMin = *req.SlotFrequencyMin
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		company.Timezone = *req.Timezone
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar as configurações da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}
