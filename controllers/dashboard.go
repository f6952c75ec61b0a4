package controllers

import (
	"net/http"
	"time"

	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RevenueSummary struct {
	Scope  services.RevenueScope `json:"scope"`
	Label  string                `json:"label"`
	Amount decimal.Decimal       `json:"amount"`
}

type DashboardOverview struct {
	Greeting     string                 `json:"greeting"`
	BusinessName string                 `json:"businessName"`
	Date         string                 `json:"date"`
	Stats        services.PipelineStats `json:"stats"`
	Revenue      RevenueSummary         `json:"revenue"`
	Weather      services.Weather       `json:"weather"`
}

// DashboardController serves the home screen summary.
type DashboardController struct {
	Weather services.WeatherProvider
	Now     func() time.Time
}

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// GetDashboardOverview counts the pipeline over every record and sums revenue
// for ?scope= (all, year, month, week, day; default year).
func (d *DashboardController) GetDashboardOverview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scope := services.RevenueScope(c.DefaultQuery("scope", string(services.ScopeYear)))
	if !scope.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Scope must be one of all, year, month, week, day")
		return
	}

	user, ok := loadUser(c, userID)
	if !ok {
		return
	}

	customers, ok := ownedCustomers(c, userID)
	if !ok {
		return
	}

	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}

	weather := services.PlaceholderWeather
	if d.Weather != nil {
		w, err := d.Weather.Current(c.Request.Context(), user.City)
		if err != nil {
			utils.Logger(c).Warn("weather lookup failed", zap.String("city", user.City), zap.Error(err))
		} else {
			weather = w
		}
	}

	businessName := user.BusinessName
	if businessName == "" {
		businessName = "Partner"
	}

	c.JSON(http.StatusOK, DashboardOverview{
		Greeting:     Greeting(now.Hour()),
		BusinessName: businessName,
		Date:         now.Format("Monday, January 2"),
		Stats:        services.PipelineCounts(customers, now),
		Revenue: RevenueSummary{
			Scope:  scope,
			Label:  scope.Label(),
			Amount: services.RevenueInWindow(customers, scope, now),
		},
		Weather: weather,
	})
}
