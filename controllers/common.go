package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FieldEditInput is the body of every single-field edit endpoint.
type FieldEditInput struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	session, ok := utils.CurrentSession(c)
	if !ok || session.UserID == uuid.Nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	return session.UserID, true
}

// loadCustomer fetches the record named by :id for the signed-in user.
// Records of other users and soft-deleted records are reported as not found.
func loadCustomer(c *gin.Context) (models.Customer, bool) {
	var customer models.Customer

	userID, ok := currentUserID(c)
	if !ok {
		return customer, false
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return customer, false
	}

	if err := config.DB.Where("user_id = ? AND id = ?", userID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.Logger(c).Error("load customer", zap.Error(err))
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return customer, false
	}
	return customer, true
}

// saveCustomer persists the whole record and writes it back as the response.
func saveCustomer(c *gin.Context, customer *models.Customer) {
	if err := config.DB.Save(customer).Error; err != nil {
		utils.Logger(c).Error("save customer", zap.String("customer_id", customer.ID.String()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// ownedCustomers lists every live record of the signed-in user, newest first.
func ownedCustomers(c *gin.Context, userID uuid.UUID) ([]models.Customer, bool) {
	var customers []models.Customer
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&customers).Error; err != nil {
		utils.Logger(c).Error("list customers", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return nil, false
	}
	return customers, true
}

func loadUser(c *gin.Context, userID uuid.UUID) (models.User, bool) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return user, false
	}
	return user, true
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid index")
		return 0, false
	}
	return index, true
}
