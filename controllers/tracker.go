package controllers

import (
	"errors"
	"net/http"
	"strings"

	"caterflow-backend/config"
	"caterflow-backend/models"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Geographic center of the contiguous US, used before any lead is mapped.
var defaultMapCenter = services.Coordinates{Lat: 39.8283, Lng: -98.5795}

const (
	defaultMapZoom = 4
	leadMapZoom    = 13
)

type LeadInput struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
}

type MapPin struct {
	ID       string                `json:"id"`
	FullName string                `json:"fullName"`
	Address  string                `json:"address"`
	Status   models.PipelineStatus `json:"status"`
	Lat      float64               `json:"lat"`
	Lng      float64               `json:"lng"`
}

type TrackerStats struct {
	TotalLeads int `json:"totalLeads"`
	TotalSold  int `json:"totalSold"`
	WinRate    int `json:"winRate"`
}

// TrackerController backs the lead routing map.
type TrackerController struct {
	Geocoder services.Geocoder
}

func (in LeadInput) trimmed() (string, string, bool) {
	name := strings.TrimSpace(in.FullName)
	address := strings.TrimSpace(in.Address)
	return name, address, name != "" && address != ""
}

// GetTracker lists every lead with map pins for the geocoded ones. The map
// centers on the newest pin.
func (t *TrackerController) GetTracker(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	customers, ok := ownedCustomers(c, userID)
	if !ok {
		return
	}

	pins := make([]MapPin, 0, len(customers))
	sold := 0
	for _, cu := range customers {
		if cu.Status == models.StatusSold {
			sold++
		}
		if cu.Lat == nil || cu.Lng == nil || *cu.Lat == 0 || *cu.Lng == 0 {
			continue
		}
		pins = append(pins, MapPin{
			ID:       cu.ID.String(),
			FullName: cu.FullName,
			Address:  cu.Address,
			Status:   cu.Status.Normalize(),
			Lat:      *cu.Lat,
			Lng:      *cu.Lng,
		})
	}

	center, zoom := defaultMapCenter, defaultMapZoom
	if len(pins) > 0 {
		center = services.Coordinates{Lat: pins[0].Lat, Lng: pins[0].Lng}
		zoom = leadMapZoom
	}

	c.JSON(http.StatusOK, gin.H{
		"leads":  customers,
		"pins":   pins,
		"center": center,
		"zoom":   zoom,
		"stats": TrackerStats{
			TotalLeads: len(customers),
			TotalSold:  sold,
			WinRate:    services.WinRate(customers),
		},
	})
}

// CreateLead geocodes the address and inserts a new lead at that position.
func (t *TrackerController) CreateLead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	name, address, ok := input.trimmed()
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Enter name and address!")
		return
	}
	if t.Geocoder == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Geocoding is not configured")
		return
	}

	coords, err := t.Geocoder.Geocode(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, services.ErrNoResults) {
			utils.RespondWithError(c, http.StatusUnprocessableEntity, "Address not found. Try adding City, State.")
			return
		}
		utils.Logger(c).Error("geocode lead", zap.String("address", address), zap.Error(err))
		utils.RespondWithError(c, http.StatusBadGateway, "Geocoding failed.")
		return
	}

	// Map leads stay unpriced until quoted.
	lead := models.NewCustomer(userID)
	lead.JobPrice = decimal.NullDecimal{}
	lead.FullName = name
	lead.Address = address
	lead.Lat = &coords.Lat
	lead.Lng = &coords.Lng

	if err := config.DB.Create(&lead).Error; err != nil {
		utils.Logger(c).Error("create lead", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// UpdateLead renames or readdresses a lead. The pin is not moved.
func (t *TrackerController) UpdateLead(c *gin.Context) {
	var input LeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	name, address, ok := input.trimmed()
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Enter name and address!")
		return
	}

	customer, ok := loadCustomer(c)
	if !ok {
		return
	}

	customer.FullName = name
	customer.Address = address
	saveCustomer(c, &customer)
}
