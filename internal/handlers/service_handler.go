package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceStageRequest struct {
	Sequence             int  `json:"sequence" binding:"required,min=1"`
	DurationMin          int  `json:"duration_min" binding:"required,min=1"`
	OccupiesProfessional bool `json:"occupies_professional"`
}

type ServiceRequest struct {
	Name        string                `json:"name" binding:"required,min=2,max=100"`
	Description string                `json:"description" binding:"max=255"`
	Active      *bool                 `json:"active"`
	Stages      []ServiceStageRequest `json:"stages" binding:"required,min=1,dive"`
}

func validStageSequences(stages []ServiceStageRequest) bool {
	seen := make(map[int]bool, len(stages))
	for _, st := range stages {
		if seen[st.Sequence] {
			return false
		}
		seen[st.Sequence] = true
	}
	return true
}

func (h *ServiceHandler) List(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var services []models.Service
	if err := h.db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var service models.Service
	if err := h.db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}
	if !validStageSequences(req.Stages) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicated_stage_sequence"})
		return
	}

	service := models.Service{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	sort.Slice(req.Stages, func(i, j int) bool {
		return req.Stages[i].Sequence < req.Stages[j].Sequence
	})
	for _, st := range req.Stages {
		service.Stages = append(service.Stages, models.ServiceStage{
			Sequence:             st.Sequence,
			DurationMin:          st.DurationMin,
			OccupiesProfessional: st.OccupiesProfessional,
		})
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	writeAudit(h.db, companyID, nil,
		"service_created", "service", &service.ID,
		gin.H{"name": service.Name, "stages": len(service.Stages)})

	c.JSON(http.StatusCreated, service)
}

// Update substitui também as etapas: a duração total e a ordem do
// serviço derivam delas, então edição parcial abriria espaço para
// grades inconsistentes.
func (h *ServiceHandler) Update(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}
	if !validStageSequences(req.Stages) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicated_stage_sequence"})
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	if req.Active != nil {
		service.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_id = ?", service.ID).
			Delete(&models.ServiceStage{}).Error; err != nil {
			return err
		}

		stages := make([]models.ServiceStage, 0, len(req.Stages))
		for _, st := range req.Stages {
			stages = append(stages, models.ServiceStage{
				ServiceID:            service.ID,
				Sequence:             st.Sequence,
				DurationMin:          st.DurationMin,
				OccupiesProfessional: st.OccupiesProfessional,
			})
		}
		if err := tx.Create(&stages).Error; err != nil {
			return err
		}

		return tx.Omit("Stages").Save(&service).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	h.Get(c)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	res := h.db.
		Where("id = ? AND company_id = ?", c.Param("id"), companyID).
		Delete(&models.Service{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type OfferServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// Offer vincula o profissional autenticado a um serviço do catálogo.
func (h *ServiceHandler) Offer(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	professionalID := userIDVal.(uint)
	companyID := companyIDVal.(uint)

	var req OfferServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND company_id = ?", req.ServiceID, companyID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	link := models.ProfessionalService{
		ProfessionalID: professionalID,
		ServiceID:      service.ID,
	}
	if err := h.db.
		Where(&link).
		FirstOrCreate(&link).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_offer_service"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *ServiceHandler) Unoffer(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	res := h.db.
		Where("professional_id = ? AND service_id = ?", professionalID, c.Param("id")).
		Delete(&models.ProfessionalService{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_remove_service_link"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_link_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
