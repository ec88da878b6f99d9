package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	domain "github.com/AgendaPlusBR/scheduling-api/internal/domain/schedule"
	"github.com/AgendaPlusBR/scheduling-api/internal/httperr"
	"github.com/AgendaPlusBR/scheduling-api/internal/httpresp"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

type BlockedPeriodsHandler struct {
	db    *gorm.DB
	cache *cache.Availability
}

func NewBlockedPeriodsHandler(db *gorm.DB, cache *cache.Availability) *BlockedPeriodsHandler {
	return &BlockedPeriodsHandler{db: db, cache: cache}
}

type BlockedPeriodRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Message string    `json:"message"`
}

func (h *BlockedPeriodsHandler) List(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var periods []models.BlockedPeriod
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("start_at ASC").
		Find(&periods).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_blocked_periods"})
		return
	}

	httpresp.List(c, periods)
}

func (h *BlockedPeriodsHandler) Create(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	var req BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	period := models.BlockedPeriod{
		CompanyID: companyID,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Message:   req.Message,
	}

	var existing []models.BlockedPeriod
	if err := h.db.
		Where("company_id = ?", companyID).
		Find(&existing).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_blocked_periods"})
		return
	}

	if err := domain.ValidateBlockedPeriod(&period, existing); err != nil {
		httperr.FromDomain(c, err)
		return
	}

	if err := h.db.Create(&period).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_blocked_period"})
		return
	}

	// Slots cacheados nos dias bloqueados ficaram obsoletos
	h.cache.InvalidateRange(c.Request.Context(), period.StartAt, period.EndAt)

	writeAudit(h.db, companyID, nil,
		"blocked_period_created", "blocked_period", &period.ID,
		gin.H{"start_at": period.StartAt, "end_at": period.EndAt})

	c.JSON(http.StatusCreated, period)
}

func (h *BlockedPeriodsHandler) Delete(c *gin.Context) {
	companyIDVal, _ := c.Get(middleware.ContextCompanyID)
	companyID := companyIDVal.(uint)

	id := c.Param("id")

	var period models.BlockedPeriod
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&period).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "blocked_period_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blocked_period"})
		return
	}

	if err := h.db.Delete(&period).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_blocked_period"})
		return
	}

	// Remover um bloqueio reabre horários que o cache ainda esconde
	h.cache.InvalidateRange(c.Request.Context(), period.StartAt, period.EndAt)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
