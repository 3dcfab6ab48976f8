package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenity-aesthetics/salon-api/internal/models"
)

// ScheduleHandler manages the weekly slot template. Changes apply to every
// future week; existing appointments are untouched.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleDayConfig struct {
	Weekday int      `json:"weekday" binding:"min=0,max=6"`
	Times   []string `json:"times" binding:"required"` // "HH:MM", ascending
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	var slots []models.ScheduleSlot
	if err := h.db.
		Order("weekday ASC, time_of_day ASC").
		Find(&slots).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Update replaces the whole template in one transaction.
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var toCreate []models.ScheduleSlot
	for _, d := range req.Days {
		for _, tod := range d.Times {
			if _, err := time.Parse("15:04", tod); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "invalid_time_of_day",
					"details": tod,
				})
				return
			}

			toCreate = append(toCreate, models.ScheduleSlot{
				Weekday:   d.Weekday,
				TimeOfDay: tod,
				Active:    true,
			})
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ScheduleSlot{}).Error; err != nil {
			return err
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
