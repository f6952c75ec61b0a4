package controllers_test

import (
	"net/http"
	"testing"

	"caterflow-backend/controllers"
	"caterflow-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCatalog(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "owner@example.com")
	_, otherToken := env.createUser(t, "other@example.com")

	w := env.do(t, http.MethodPost, "/api/services", token, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Item Name required", errorMessage(t, w))

	w = env.do(t, http.MethodPost, "/api/services", token, map[string]string{"name": "Tacos", "category": "Dessert"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	items := []map[string]string{
		{"name": "Tacos"},
		{"name": "Rice", "category": "Side"},
		{"name": "Beans", "category": "Side"},
		{"name": "Horchata", "category": "Drink"},
		{"name": "Chafing Dish", "itemType": "rental"},
	}
	var created []models.Service
	for _, item := range items {
		w := env.do(t, http.MethodPost, "/api/services", token, item)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created = append(created, decode[models.Service](t, w))
	}
	assert.Equal(t, models.CategoryEntree, created[0].Category)
	assert.Equal(t, models.ItemTypeCatering, created[0].ItemType)

	w = env.do(t, http.MethodGet, "/api/services", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]models.Service](t, w)
	require.Len(t, listed, 4)
	assert.Equal(t, "Tacos", listed[0].Name)

	w = env.do(t, http.MethodGet, "/api/services?itemType=rental", token, nil)
	assert.Len(t, decode[[]models.Service](t, w), 1)

	w = env.do(t, http.MethodGet, "/api/services/options", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controllers.MenuOptions{
		Entrees: []string{"Tacos"},
		Sides:   []string{"Beans", "Rice"},
		Drinks:  []string{"Horchata"},
	}, decode[controllers.MenuOptions](t, w))

	url := "/api/services/" + created[0].ID.String()
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, url, otherToken, nil).Code)

	w = env.do(t, http.MethodPut, url, token, map[string]string{"name": "Street Tacos"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Street Tacos", decode[models.Service](t, w).Name)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, url, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, url, token, nil).Code)
}

func TestRenamingCatalogItemKeepsClientMenus(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser(t, "owner@example.com")

	w := env.do(t, http.MethodPost, "/api/services", token, map[string]string{"name": "Tacos"})
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode[models.Service](t, w)

	record := env.createCustomer(t, owner, func(c *models.Customer) {
		c.SetData(models.ServiceData{MenuEntrees: []string{"Tacos"}})
	})

	w = env.do(t, http.MethodPut, "/api/services/"+item.ID.String(), token, map[string]string{"name": "Street Tacos"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"Tacos"}, env.reload(t, record.ID).Data().MenuEntrees)
}
