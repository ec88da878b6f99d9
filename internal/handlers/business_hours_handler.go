package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	cache *cache.Availability
}

func NewBusinessHoursHandler(db *gorm.DB, cache *cache.Availability) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, cache: cache}
}

type BusinessDayConfig struct {
	Weekday    int    `json:"weekday" binding:"required,min=1,max=7"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	RoomID     uint   `json:"room_id"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required,dive"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var hours []models.BusinessHour
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_business_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui a grade inteira do profissional. A validação roda
// antes de qualquer escrita: pausa contida no expediente e nenhuma
// sobreposição entre linhas do mesmo dia.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	rows := make([]models.BusinessHour, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.BusinessHour{
			ProfessionalID: professionalID,
			Weekday:        d.Weekday,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			BreakStart:     d.BreakStart,
			BreakEnd:       d.BreakEnd,
			RoomID:         d.RoomID,
		})
	}

	if err := domain.ValidateWeekRows(rows); err != nil {
		httperr.FromDomain(c, err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.BusinessHour{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_business_hours"})
		return
	}

	// Slots cacheados foram calculados com a grade antiga
	h.cache.InvalidateProfessional(c.Request.Context(), professionalID)

	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)
	writeAudit(h.db, companyID, &professionalID,
		"business_hours_updated", "business_hours", nil,
		gin.H{"days": len(rows)})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
