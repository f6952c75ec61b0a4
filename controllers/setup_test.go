package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"caterflow-backend/config"
	"caterflow-backend/controllers"
	"caterflow-backend/models"
	"caterflow-backend/routes"
	"caterflow-backend/services"
	"caterflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testPassword = "password123"

var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			panic(err)
		}
	}
	os.Exit(m.Run())
}

type fakeGeocoder struct {
	coords services.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (services.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

type fakeWeather struct {
	weather services.Weather
	err     error
}

func (f *fakeWeather) Current(_ context.Context, _ string) (services.Weather, error) {
	return f.weather, f.err
}

type fakeStorage struct {
	keys []string
	body []byte
	err  error
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.body = data
	return "https://files.example.com/" + key, nil
}

type sentMessage struct {
	phone string
	body  string
}

type fakeNotifier struct {
	sent []sentMessage
}

func (f *fakeNotifier) Send(_ context.Context, phone, body string) (string, error) {
	f.sent = append(f.sent, sentMessage{phone: phone, body: body})
	return services.ChannelSMS, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	tokens   *utils.TokenManager
	geocoder *fakeGeocoder
	weather  *fakeWeather
	storage  *fakeStorage
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = previous
		sqlDB.Close()
	})

	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	renderer, err := services.NewDocumentRenderer()
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		tokens:   tokens,
		geocoder: &fakeGeocoder{coords: services.Coordinates{Lat: 25.76, Lng: -80.19}},
		weather:  &fakeWeather{weather: services.Weather{Temp: "81", Condition: "Clear"}},
		storage:  &fakeStorage{},
		notifier: &fakeNotifier{},
	}
	now := func() time.Time { return testNow }
	reminders := services.NewReminderService(db, env.notifier, config.ReminderConfig{WindowDays: 7}, zap.NewNop())

	env.router = routes.SetupRouter(config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}}, zap.NewNop(), routes.Handlers{
		Tokens:    tokens,
		Auth:      &controllers.AuthController{Tokens: tokens, Notifier: env.notifier, PublicURL: "https://app.example.com"},
		Documents: &controllers.DocumentController{Renderer: renderer, Now: now},
		Contracts: &controllers.ContractController{Storage: env.storage, PublicURL: "https://app.example.com"},
		Dashboard: &controllers.DashboardController{Weather: env.weather, Now: now},
		Tracker:   &controllers.TrackerController{Geocoder: env.geocoder},
		Reminders: &controllers.ReminderController{Service: reminders},
	})
	return env
}

// createUser inserts an account directly and returns a session token for it.
func (e *testEnv) createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()
	hashed, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{Email: email, Password: hashed, BusinessName: "Taco Time", BusinessType: "Catering", City: "Miami", State: "FL"}
	require.NoError(t, e.db.Create(&user).Error)
	token, err := e.tokens.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) createCustomer(t *testing.T, owner models.User, mutate func(*models.Customer)) models.Customer {
	t.Helper()
	c := models.NewCustomer(owner.ID)
	if mutate != nil {
		mutate(&c)
	}
	require.NoError(t, e.db.Create(&c).Error)
	return c
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func (e *testEnv) reload(t *testing.T, id any) models.Customer {
	t.Helper()
	var c models.Customer
	require.NoError(t, e.db.First(&c, "id = ?", id).Error)
	return c
}
