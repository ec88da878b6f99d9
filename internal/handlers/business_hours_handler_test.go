package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	dbpkg "github.com/AgendaPlusBR/scheduling-api/internal/db"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	"github.com/AgendaPlusBR/scheduling-api/internal/models"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(gdb))
	return gdb
}

// fakeAuth injeta as chaves de contexto que o AuthMiddleware colocaria.
func fakeAuth(userID, companyID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextCompanyID, companyID)
		c.Set(middleware.ContextUserRole, "owner")
		c.Next()
	}
}

func seedProfessional(t *testing.T, db *gorm.DB) (models.Company, models.User) {
	t.Helper()

	company := models.Company{Name: "Studio Norte", Slug: "studio-norte", Timezone: "America/Sao_Paulo"}
	require.NoError(t, db.Create(&company).Error)

	prof := models.User{
		CompanyID:    company.ID,
		Name:         "Carla",
		Email:        "carla@studionorte.com",
		PasswordHash: "x",
		Role:         "owner",
	}
	require.NoError(t, db.Create(&prof).Error)

	return company, prof
}

func businessHoursRouter(db *gorm.DB, av *cache.Availability, userID, companyID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBusinessHoursHandler(db, av)

	grp := r.Group("/", fakeAuth(userID, companyID))
	grp.GET("/me/business-hours", h.Get)
	grp.PUT("/me/business-hours", h.Update)
	return r
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBusinessHoursUpdateAndGet(t *testing.T) {
	db := newHandlerDB(t)
	company, prof := seedProfessional(t, db)
	r := businessHoursRouter(db, cache.NewAvailability(nil), prof.ID, company.ID)

	w := putJSON(t, r, "/me/business-hours", gin.H{
		"days": []gin.H{
			{"weekday": 1, "start_time": "09:00", "end_time": "17:00", "break_start": "13:00", "break_end": "14:00"},
			{"weekday": 7, "start_time": "10:00", "end_time": "14:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me/business-hours", nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)

	var rows []models.BusinessHour
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Weekday)
	assert.Equal(t, 7, rows[1].Weekday)
	assert.Equal(t, "13:00", rows[0].BreakStart)
}

func TestBusinessHoursUpdateReplacesGrid(t *testing.T) {
	db := newHandlerDB(t)
	company, prof := seedProfessional(t, db)
	r := businessHoursRouter(db, cache.NewAvailability(nil), prof.ID, company.ID)

	w := putJSON(t, r, "/me/business-hours", gin.H{
		"days": []gin.H{
			{"weekday": 1, "start_time": "09:00", "end_time": "17:00"},
			{"weekday": 2, "start_time": "09:00", "end_time": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = putJSON(t, r, "/me/business-hours", gin.H{
		"days": []gin.H{
			{"weekday": 5, "start_time": "08:00", "end_time": "12:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.BusinessHour{}).Where("professional_id = ?", prof.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBusinessHoursUpdateRejectsBadGrid(t *testing.T) {
	db := newHandlerDB(t)
	company, prof := seedProfessional(t, db)
	r := businessHoursRouter(db, cache.NewAvailability(nil), prof.ID, company.ID)

	cases := []struct {
		name   string
		days   []gin.H
		status int
	}{
		{
			"weekday out of range fails binding",
			[]gin.H{{"weekday": 8, "start_time": "09:00", "end_time": "17:00"}},
			http.StatusBadRequest,
		},
		{
			"break outside window",
			[]gin.H{{"weekday": 1, "start_time": "09:00", "end_time": "17:00", "break_start": "18:00", "break_end": "19:00"}},
			http.StatusUnprocessableEntity,
		},
		{
			"overlapping rows",
			[]gin.H{
				{"weekday": 1, "start_time": "09:00", "end_time": "13:00"},
				{"weekday": 1, "start_time": "12:00", "end_time": "18:00"},
			},
			http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		w := putJSON(t, r, "/me/business-hours", gin.H{"days": tc.days})
		assert.Equal(t, tc.status, w.Code, "%s: %s", tc.name, w.Body.String())
	}

	// Nada foi persistido
	var count int64
	db.Model(&models.BusinessHour{}).Count(&count)
	assert.Zero(t, count)
}

func TestBusinessHoursUpdateInvalidatesCachedSlots(t *testing.T) {
	db := newHandlerDB(t)
	company, prof := seedProfessional(t, db)

	mr := miniredis.RunT(t)
	av := cache.NewAvailability(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	r := businessHoursRouter(db, av, prof.ID, company.ID)

	mine := fmt.Sprintf("slots:%d:1:2026-01-05", prof.ID)
	other := fmt.Sprintf("slots:%d:1:2026-01-05", prof.ID+1)
	require.NoError(t, mr.Set(mine, "{}"))
	require.NoError(t, mr.Set(other, "{}"))

	w := putJSON(t, r, "/me/business-hours", gin.H{
		"days": []gin.H{
			{"weekday": 1, "start_time": "08:00", "end_time": "12:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A grade nova derruba os slots cacheados do profissional; os dos
	// demais seguem válidos
	assert.False(t, mr.Exists(mine))
	assert.True(t, mr.Exists(other))
}
