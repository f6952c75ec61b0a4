// controllers/analytics.go
package controllers

import (
	"net/http"
	"time"

	"caterflow-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AnalyticsSummary is computed over real jobs only, records with a job price.
type AnalyticsSummary struct {
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	Jobs          int              `json:"jobs"`
	TopCities     []services.Count `json:"topCities"`
	TopItems      []services.Count `json:"topItems"`
	MonthlyTrends []services.Count `json:"monthlyTrends"`
}

func GetAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	customers, ok := ownedCustomers(c, userID)
	if !ok {
		return
	}

	jobs := services.WithPrice(customers)
	c.JSON(http.StatusOK, AnalyticsSummary{
		TotalRevenue:  services.TotalRevenue(jobs),
		Jobs:          len(jobs),
		TopCities:     services.TopCities(jobs, 0),
		TopItems:      services.TopItems(jobs, 0),
		MonthlyTrends: services.MonthlyTrends(jobs, time.Local),
	})
}
