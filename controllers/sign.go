package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const proposalNotFound = "Proposal not found or has expired."

type SignProposalInput struct {
	Signature string `json:"signature"`
}

// findProposal looks a record up by id alone; the signing link carries no session.
func findProposal(c *gin.Context) (models.Customer, bool) {
	var customer models.Customer
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, proposalNotFound)
		return customer, false
	}
	if err := config.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, proposalNotFound)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return customer, false
	}
	return customer, true
}

// GetProposal is the public contract view. It exposes event terms only.
func GetProposal(c *gin.Context) {
	customer, ok := findProposal(c)
	if !ok {
		return
	}

	var business models.BusinessProfile
	var owner models.User
	if err := config.DB.First(&owner, "id = ?", customer.UserID).Error; err == nil {
		business = owner.Profile()
	}

	sd := customer.Data()
	c.JSON(http.StatusOK, gin.H{
		"id":           customer.ID,
		"fullName":     customer.FullName,
		"businessName": business.BusinessName,
		"eventDate":    sd.EventDate,
		"eventTime":    sd.EventTime,
		"guestCount":   sd.GuestCount,
		"total":        customer.Price(),
		"menuEntrees":  sd.MenuEntrees,
		"menuSides":    sd.MenuSides,
		"menuDrinks":   sd.MenuDrinks,
		"paymentPlan":  sd.PaymentPlan,
		"signed":       customer.IsSigned(),
		"signedBy":     sd.SignedBy,
		"signedAt":     sd.SignedAt,
	})
}

// SignProposal records a typed signature. It writes status, contractUrl and
// the signature fields of serviceData and nothing else.
func SignProposal(c *gin.Context) {
	var input SignProposalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	signature := strings.TrimSpace(input.Signature)
	if utf8.RuneCountInString(signature) < 3 {
		utils.RespondWithError(c, http.StatusBadRequest, "Please type your full legal name to sign.")
		return
	}

	customer, ok := findProposal(c)
	if !ok {
		return
	}
	if customer.IsSigned() {
		utils.RespondWithError(c, http.StatusConflict, "This proposal has already been signed.")
		return
	}

	sd := customer.Data().Clone()
	sd.SignedBy = signature
	sd.SignedAt = time.Now().UTC().Format(time.RFC3339)
	if err := services.SetStatus(&customer, models.StatusSold); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sign proposal")
		return
	}
	customer.ContractURL = models.SignedDigitally
	customer.SetData(sd)

	if err := config.DB.Model(&customer).
		Select("status", "contract_url", "service_data").
		Updates(&customer).Error; err != nil {
		utils.Logger(c).Error("sign proposal", zap.String("customer_id", customer.ID.String()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sign proposal")
		return
	}

	utils.Logger(c).Info("proposal signed", zap.String("customer_id", customer.ID.String()))
	c.JSON(http.StatusOK, gin.H{
		"message":  "Proposal signed",
		"signedBy": sd.SignedBy,
		"signedAt": sd.SignedAt,
	})
}
