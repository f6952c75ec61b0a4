package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateCustomerInput is optional; an empty body creates the placeholder record.
type CreateCustomerInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateCustomerInput replaces only the fields that are present. A blank
// jobPrice clears the price.
type UpdateCustomerInput struct {
	FullName    *string                `json:"fullName"`
	Email       *string                `json:"email"`
	Phone       *string                `json:"phone"`
	Address     *string                `json:"address"`
	JobPrice    *models.LooseNumber    `json:"jobPrice"`
	Status      *models.PipelineStatus `json:"status"`
	ServiceData *models.ServiceData    `json:"serviceData"`
	JobNotes    *string                `json:"jobNotes"`
	ContractURL *string                `json:"contractUrl"`
}

type UpdateStatusInput struct {
	Status models.PipelineStatus `json:"status" binding:"required"`
}

type ResizePlanInput struct {
	Count *int `json:"count" binding:"required"`
}

type MenuItemInput struct {
	Category models.MenuCategory `json:"category"`
	Name     string              `json:"name"`
}

type TimelineEntryInput struct {
	Time   string `json:"time" binding:"clock"`
	Action string `json:"action"`
}

func parseJobPrice(n models.LooseNumber) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// respondEditError maps payment plan, menu and timeline edit errors to 400.
func respondEditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInstallmentIndex),
		errors.Is(err, services.ErrTimelineIndex),
		errors.Is(err, services.ErrPlanSize),
		errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrInvalidStatus):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
	}
}

// CreateCustomer adds a new record with placeholder values.
func CreateCustomer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	customer := models.NewCustomer(userID)
	if name := strings.TrimSpace(input.FullName); name != "" {
		customer.FullName = name
	}
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.Logger(c).Error("create customer", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists the user's records newest first, filtered by ?search=
// over name and address.
func GetCustomers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		utils.Logger(c).Error("list customers", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	customer, ok := loadCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies a partial update. serviceData, when present,
// replaces the stored event configuration as a whole.
func UpdateCustomer(c *gin.Context) {
	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.JobPrice != nil {
		price, err := parseJobPrice(*input.JobPrice)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid job price")
			return
		}
		customer.JobPrice = price
	}
	if input.Status != nil {
		if err := services.SetStatus(&customer, *input.Status); err != nil {
			respondEditError(c, err)
			return
		}
	}
	if input.ServiceData != nil {
		if err := services.CheckServiceData(*input.ServiceData); err != nil {
			respondEditError(c, err)
			return
		}
		customer.SetData(*input.ServiceData)
	}
	if input.JobNotes != nil {
		customer.JobNotes = *input.JobNotes
	}
	if input.ContractURL != nil {
		customer.ContractURL = *input.ContractURL
	}

	saveCustomer(c, &customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// UpdateCustomerStatus moves the record to any pipeline stage.
func UpdateCustomerStatus(c *gin.Context) {
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	if err := services.SetStatus(&customer, input.Status); err != nil {
		respondEditError(c, err)
		return
	}

	saveCustomer(c, &customer)
}

func GetPipeline(c *gin.Context) {
	customer, ok := loadCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": customer.Status.Normalize(),
		"steps":  services.StepStates(customer.Status),
	})
}

// UpdatePricing commits one guestCount or pricePerHead edit and recalculates
// the job price when both are positive.
func UpdatePricing(c *gin.Context) {
	var input FieldEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd, price, err := services.UpdateGuestPriceAndRecalculate(customer.Data(), input.Field, input.Value, customer.JobPrice)
	if err != nil {
		respondEditError(c, err)
		return
	}
	customer.SetData(sd)
	customer.JobPrice = price

	saveCustomer(c, &customer)
}

// ResizePaymentPlan sets the number of installments, keeping existing ones from the head.
func ResizePaymentPlan(c *gin.Context) {
	var input ResizePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd := customer.Data().Clone()
	plan, err := services.ResizePlan(sd.PaymentPlan, *input.Count)
	if err != nil {
		respondEditError(c, err)
		return
	}
	sd.PaymentPlan = plan
	customer.SetData(sd)

	saveCustomer(c, &customer)
}

func UpdateInstallment(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}

	var input FieldEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd := customer.Data().Clone()
	plan, err := services.SetInstallmentField(sd.PaymentPlan, index, input.Field, input.Value)
	if err != nil {
		respondEditError(c, err)
		return
	}
	sd.PaymentPlan = plan
	customer.SetData(sd)

	saveCustomer(c, &customer)
}

func GetPaymentSummary(c *gin.Context) {
	customer, ok := loadCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, services.SummarizePayments(customer))
}

func AddCustomerMenuItem(c *gin.Context) {
	var input MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Category != "" && !input.Category.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Category must be Entree, Side or Drink")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Item Name required")
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	customer.SetData(services.AddMenuItem(customer.Data(), input.Category, input.Name))
	saveCustomer(c, &customer)
}

func RemoveCustomerMenuItem(c *gin.Context) {
	category := models.MenuCategory(c.Param("category"))
	if !category.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Category must be Entree, Side or Drink")
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	customer.SetData(services.RemoveMenuItem(customer.Data(), category, c.Param("name")))
	saveCustomer(c, &customer)
}

func AddTimelineEntry(c *gin.Context) {
	var input TimelineEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd, err := services.AddTimelineEntry(customer.Data(), models.TimelineEntry{Time: input.Time, Action: input.Action})
	if err != nil {
		respondEditError(c, err)
		return
	}
	customer.SetData(sd)

	saveCustomer(c, &customer)
}

func UpdateTimelineEntry(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}

	var input FieldEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd, err := services.UpdateTimelineEntry(customer.Data(), index, input.Field, input.Value)
	if err != nil {
		respondEditError(c, err)
		return
	}
	customer.SetData(sd)

	saveCustomer(c, &customer)
}

func DeleteTimelineEntry(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	sd, err := services.RemoveTimelineEntry(customer.Data(), index)
	if err != nil {
		respondEditError(c, err)
		return
	}
	customer.SetData(sd)

	saveCustomer(c, &customer)
}
