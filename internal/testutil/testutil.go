package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
)

const JWTSecret = "droneclear-test-secret"

// SetupTestDB opens an in-memory database and migrates all tables. Each test
// gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.Category{},
		&entity.Component{},
		&entity.DroneModel{},
		&entity.BuildGuide{},
		&entity.BuildGuideStep{},
		&entity.BuildSession{},
		&entity.StepPhoto{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a bare gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// GenerateTestToken creates a signed JWT for the auth middleware
func GenerateTestToken(subject string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iss": "droneclear",
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes a JSON HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoMultipartRequest executes a multipart form upload against the test router
func DoMultipartRequest(r *gin.Engine, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := mw.CreateFormFile(fileField, fileName)
		part.Write(fileContent)
	}
	mw.Close()

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedCategory creates a category row
func SeedCategory(t *testing.T, db *gorm.DB, slug, name string) *entity.Category {
	t.Helper()
	cat := &entity.Category{
		ID:   repository.NewID(),
		Slug: slug,
		Name: name,
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("Failed to seed category %s: %v", slug, err)
	}
	return cat
}

// SeedComponent creates a component row in the given category
func SeedComponent(t *testing.T, db *gorm.DB, cat *entity.Category, pid, name string) *entity.Component {
	t.Helper()
	comp := &entity.Component{
		ID:           repository.NewID(),
		PID:          pid,
		CategoryID:   cat.ID,
		Name:         name,
		Manufacturer: "Unknown",
	}
	if err := db.Create(comp).Error; err != nil {
		t.Fatalf("Failed to seed component %s: %v", pid, err)
	}
	return comp
}

// SeedGuide creates a build guide with a run of sequential steps
func SeedGuide(t *testing.T, db *gorm.DB, pid, name string, stepCount int) *entity.BuildGuide {
	t.Helper()
	guide := &entity.BuildGuide{
		ID:                   repository.NewID(),
		PID:                  pid,
		Name:                 name,
		Difficulty:           entity.DifficultyBeginner,
		EstimatedTimeMinutes: 60,
		RequiredTools:        []byte("[]"),
	}
	for i := 1; i <= stepCount; i++ {
		guide.Steps = append(guide.Steps, entity.BuildGuideStep{
			ID:                   repository.NewID(),
			GuideID:              guide.ID,
			Order:                i,
			Title:                fmt.Sprintf("Step %d", i),
			StepType:             entity.StepTypeAssembly,
			EstimatedTimeMinutes: 5,
			RequiredComponents:   []byte("[]"),
		})
	}
	if err := db.Create(guide).Error; err != nil {
		t.Fatalf("Failed to seed guide %s: %v", pid, err)
	}
	return guide
}

// SeedSession creates a build session attached to a guide
func SeedSession(t *testing.T, db *gorm.DB, guide *entity.BuildGuide, serial string) *entity.BuildSession {
	t.Helper()
	sess := &entity.BuildSession{
		ID:           repository.NewID(),
		SerialNumber: serial,
		GuideID:      guide.ID,
		CurrentStep:  1,
		Status:       entity.SessionStatusInProgress,
	}
	if err := db.Create(sess).Error; err != nil {
		t.Fatalf("Failed to seed session %s: %v", serial, err)
	}
	return sess
}
