package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	BusinessName string `json:"businessName"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

const forgotPasswordMessage = "If an account exists for that email, password reset instructions have been sent"

// AuthController issues and revokes session tokens.
type AuthController struct {
	Tokens    *utils.TokenManager
	Notifier  services.Notifier
	PublicURL string
}

func userResponse(user models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"fullName":     user.FullName,
		"phone":        user.Phone,
		"businessName": user.BusinessName,
		"businessType": user.BusinessType,
		"city":         user.City,
		"state":        user.State,
	}
}

func (a *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(utils.TokenCookie, token, int(a.Tokens.Expiry().Seconds()), "/", "", true, true)
}

// controllers/auth.go
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existingUser models.User
	result := config.DB.Where("email = ?", email).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	newUser := models.User{
		Email:        email,
		Password:     hashed,
		FullName:     input.FullName,
		Phone:        input.Phone,
		BusinessName: input.BusinessName,
		BusinessType: "Catering",
	}
	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.Logger(c).Error("create user", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := a.Tokens.GenerateToken(newUser.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	a.setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    userResponse(newUser),
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	result := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := a.Tokens.GenerateToken(user.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	a.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ForgotPassword always answers with the same message so it cannot be used
// to discover which emails are registered.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	logger := utils.Logger(c)

	var user models.User
	err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("forgot password lookup", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	token, err := a.Tokens.GenerateResetToken(user.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	link := a.PublicURL + "/reset-password?token=" + token

	if user.Phone != "" && a.Notifier != nil {
		body := "Reset your CaterFlow password: " + link
		if _, err := a.Notifier.Send(c.Request.Context(), user.Phone, body); err != nil {
			logger.Error("send password reset", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	} else {
		logger.Info("password reset requested", zap.String("user_id", user.ID.String()), zap.String("link", link))
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// UpdatePassword accepts a session token or a password reset token.
func (a *AuthController) UpdatePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdatePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	user, ok := loadUser(c, userID)
	if !ok {
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := config.DB.Model(&user).Update("password", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
