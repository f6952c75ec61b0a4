package controllers

import (
	"net/http"
	"strings"

	"caterflow-backend/config"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	FullName     *string `json:"fullName"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"businessName"`
	BusinessType *string `json:"businessType"`
	City         *string `json:"city"`
	State        *string `json:"state"`
}

func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, ok := loadUser(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":        user.Email,
		"fullName":     user.FullName,
		"phone":        user.Phone,
		"businessName": user.BusinessName,
		"businessType": user.BusinessType,
		"city":         user.City,
		"state":        user.State,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, ok := loadUser(c, userID)
	if !ok {
		return
	}

	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !utils.ValidatePhone(phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		user.Phone = phone
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BusinessType != nil {
		user.BusinessType = *input.BusinessType
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.State != nil {
		user.State = *input.State
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": user.Profile()})
}
