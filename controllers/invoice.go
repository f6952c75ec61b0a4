package controllers

import (
	"net/http"

	"caterflow-backend/services"

	"github.com/gin-gonic/gin"
)

// GetInvoices derives one invoice row per record, newest first.
func GetInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	customers, ok := ownedCustomers(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, services.SummarizeInvoices(customers))
}
