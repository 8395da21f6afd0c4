package endpoint

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/healthtrack/treatment-tracker/config"
	"github.com/healthtrack/treatment-tracker/middleware"
	"github.com/healthtrack/treatment-tracker/model"
)

// setupTestDB initializes the in-memory test database with the treatments
// table migrated and empty. Cleanup is registered via t.Cleanup().
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	t.Setenv("APPENV", "test")

	db, err := config.ConnectMySQL()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}

	if err := db.AutoMigrate(&model.Treatment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	db.Where("1 = 1").Delete(&model.Treatment{})

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(&model.Treatment{})
	})

	return db
}

// setupTreatmentTest returns a Gin engine with the treatment routes
// registered and a test database injected.
func setupTreatmentTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.POST("/treatments", CreateTreatment)
	r.GET("/treatments", ListTreatments)
	r.DELETE("/treatments/:id", DeleteTreatment)
	return r, db
}

// createTestTreatment inserts a record directly, bypassing the handler.
func createTestTreatment(t *testing.T, db *gorm.DB, name, typ, date string) model.Treatment {
	t.Helper()
	treatment := model.Treatment{
		PatientName:   name,
		TreatmentType: typ,
		TreatmentDate: date,
	}
	err := db.Create(&treatment).Error
	assert.NoError(t, err)
	return treatment
}

// assertStatus asserts that the response HTTP status code matches the
// expected value.
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code)
}
