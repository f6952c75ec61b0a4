package controllers

import (
	"net/http"
	"strconv"
	"time"

	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetCalendar returns the events of ?year=&month= grouped by day of month.
// Both default to the current month.
func GetCalendar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Month must be between 1 and 12")
			return
		}
		month = m
	}

	customers, ok := ownedCustomers(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  services.EventsInMonth(customers, year, time.Month(month), time.Local),
	})
}
