package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"caterflow-backend/controllers"
	"caterflow-backend/models"
	"caterflow-backend/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Good morning", controllers.Greeting(0))
	assert.Equal(t, "Good morning", controllers.Greeting(11))
	assert.Equal(t, "Good afternoon", controllers.Greeting(12))
	assert.Equal(t, "Good afternoon", controllers.Greeting(17))
	assert.Equal(t, "Good evening", controllers.Greeting(18))
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser(t, "owner@example.com")

	priced := func(price int64, eventDate string, status models.PipelineStatus) {
		env.createCustomer(t, owner, func(c *models.Customer) {
			c.JobPrice = decimal.NewNullDecimal(decimal.NewFromInt(price))
			c.Status = status
			c.SetData(models.ServiceData{EventDate: eventDate})
		})
	}
	priced(1000, "2024-06-15", models.StatusSold)
	priced(500, "2024-02-01", models.StatusProposal)
	priced(250, "2023-12-31", models.StatusLead)
	priced(0, "", "")

	w := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := decode[controllers.DashboardOverview](t, w)

	assert.Equal(t, "Good morning", overview.Greeting)
	assert.Equal(t, "Taco Time", overview.BusinessName)
	assert.Equal(t, "Saturday, June 15", overview.Date)
	assert.Equal(t, services.PipelineStats{Clients: 4, TodayEvents: 1, Leads: 2, Proposals: 1, Sold: 1}, overview.Stats)
	assert.Equal(t, services.ScopeYear, overview.Revenue.Scope)
	assert.Equal(t, "This Year", overview.Revenue.Label)
	assert.True(t, overview.Revenue.Amount.Equal(decimal.NewFromInt(1500)), overview.Revenue.Amount.String())
	assert.Equal(t, services.Weather{Temp: "81", Condition: "Clear"}, overview.Weather)

	w = env.do(t, http.MethodGet, "/api/dashboard?scope=day", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[controllers.DashboardOverview](t, w).Revenue.Amount.Equal(decimal.NewFromInt(1000)))

	w = env.do(t, http.MethodGet, "/api/dashboard?scope=all", token, nil)
	assert.True(t, decode[controllers.DashboardOverview](t, w).Revenue.Amount.Equal(decimal.NewFromInt(1750)))

	w = env.do(t, http.MethodGet, "/api/dashboard?scope=decade", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardWeatherFailure(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "owner@example.com")
	env.weather.err = errors.New("forecast down")

	w := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.PlaceholderWeather, decode[controllers.DashboardOverview](t, w).Weather)
}
