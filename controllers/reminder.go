package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateReminderTemplateInput struct {
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

// GetReminderTemplate returns the saved template, or the built-in default when none exists.
func GetReminderTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var template models.ReminderTemplate
	if err := config.DB.Where("user_id = ?", userID).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.ReminderTemplate{
				UserID:   userID,
				Message:  models.DefaultReminderMessage,
				IsActive: true,
			})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateReminderTemplate creates the template on first save.
func UpdateReminderTemplate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.ReminderTemplate
	err := config.DB.Where("user_id = ?", userID).First(&template).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		template = models.ReminderTemplate{UserID: userID, Message: models.DefaultReminderMessage, IsActive: true}
	}

	if input.Message != nil {
		if strings.TrimSpace(*input.Message) == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		template.Message = *input.Message
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	// Create skips a false IsActive in favour of the column default.
	if template.ID == uuid.Nil {
		active := template.IsActive
		if err := config.DB.Create(&template).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save template")
			return
		}
		if !active {
			if err := config.DB.Model(&template).Update("is_active", false).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save template")
				return
			}
		}
	} else if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// ReminderController exposes the payment reminder job to the signed-in user.
type ReminderController struct {
	Service *services.ReminderService
}

// SendReminders runs the reminder pass for the current user immediately.
func (r *ReminderController) SendReminders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sent, err := r.Service.ProcessUserReminders(c.Request.Context(), userID)
	if err != nil {
		utils.Logger(c).Error("send reminders", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send reminders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// GetReminderLogs lists reminder attempts, optionally filtered by ?customerId=.
func GetReminderLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 500 {
		limit = l
	}

	query := config.DB.Where("user_id = ?", userID)
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var logs []models.PaymentReminderLog
	if err := query.Order("sent_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
