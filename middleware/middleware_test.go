package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory DB: %v", err)
	}
	return db
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	r := newTestRouter()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORSMiddleware_PreflightAborts(t *testing.T) {
	r := newTestRouter()
	r.Use(CORSMiddleware())
	handlerRan := false
	r.OPTIONS("/", func(c *gin.Context) { handlerRan = true })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handlerRan)
}

func TestDatabaseMiddlewareAndGetDB(t *testing.T) {
	r := newTestRouter()
	db := openTestDB(t)
	r.Use(DatabaseMiddleware(db))

	var got *gorm.DB
	r.GET("/", func(c *gin.Context) {
		got = GetDB(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Same(t, db, got)
}

func TestGetDB_NilWithoutMiddleware(t *testing.T) {
	r := newTestRouter()

	var got *gorm.DB = openTestDB(t)
	r.GET("/", func(c *gin.Context) {
		got = GetDB(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Nil(t, got)
}
