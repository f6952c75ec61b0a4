// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a menu item
type CreateServiceInput struct {
	Name        string              `json:"name"`
	Category    models.MenuCategory `json:"category"`
	Description string              `json:"description"`
	ItemType    models.ItemType     `json:"itemType"`
}

// UpdateServiceInput defines the expected JSON structure for updating a menu item
type UpdateServiceInput struct {
	Name        *string              `json:"name"`
	Category    *models.MenuCategory `json:"category"`
	Description *string              `json:"description"`
	ItemType    *models.ItemType     `json:"itemType"`
}

// MenuOptions is the catalog grouped for the menu pickers.
type MenuOptions struct {
	Entrees []string `json:"entrees"`
	Sides   []string `json:"sides"`
	Drinks  []string `json:"drinks"`
}

func validItemType(t models.ItemType) bool {
	return t == models.ItemTypeCatering || t == models.ItemTypeRental
}

func loadService(c *gin.Context) (models.Service, bool) {
	var service models.Service

	userID, ok := currentUserID(c)
	if !ok {
		return service, false
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return service, false
	}

	if err := config.DB.Where("user_id = ? AND id = ?", userID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return service, false
	}
	return service, true
}

// CreateService adds a catalog item for the business
func CreateService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Item Name required")
		return
	}
	category := input.Category.Normalize()
	if !category.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Category must be Entree, Side or Drink")
		return
	}
	itemType := input.ItemType
	if itemType == "" {
		itemType = models.ItemTypeCatering
	}
	if !validItemType(itemType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Item type must be catering or rental")
		return
	}

	service := models.Service{
		UserID:      userID,
		Name:        name,
		Category:    category,
		Description: input.Description,
		ItemType:    itemType,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices lists catalog items in creation order. Only catering items are
// listed unless ?itemType=rental is given.
func GetServices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemType := models.ItemType(c.DefaultQuery("itemType", string(models.ItemTypeCatering)))
	if !validItemType(itemType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Item type must be catering or rental")
		return
	}

	var services []models.Service
	if err := config.DB.Where("user_id = ? AND item_type = ?", userID, itemType).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetMenuOptions groups catering item names by category, alphabetically.
func GetMenuOptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("user_id = ? AND item_type = ?", userID, models.ItemTypeCatering).
		Order("name ASC").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	options := MenuOptions{Entrees: []string{}, Sides: []string{}, Drinks: []string{}}
	for _, s := range services {
		switch s.Category.Normalize() {
		case models.CategorySide:
			options.Sides = append(options.Sides, s.Name)
		case models.CategoryDrink:
			options.Drinks = append(options.Drinks, s.Name)
		default:
			options.Entrees = append(options.Entrees, s.Name)
		}
	}

	c.JSON(http.StatusOK, options)
}

// GetService retrieves a specific catalog item by ID
func GetService(c *gin.Context) {
	service, ok := loadService(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, service)
}

// UpdateService renames or recategorizes a catalog item. Client menus keep the old name.
func UpdateService(c *gin.Context) {
	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, ok := loadService(c)
	if !ok {
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Item Name required")
			return
		}
		service.Name = name
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Category must be Entree, Side or Drink")
			return
		}
		service.Category = *input.Category
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.ItemType != nil {
		if !validItemType(*input.ItemType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Item type must be catering or rental")
			return
		}
		service.ItemType = *input.ItemType
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a catalog item
func DeleteService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
