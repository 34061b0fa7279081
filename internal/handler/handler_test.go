package handler

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tedstrazimiri/droneclear/internal/config"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
	"github.com/tedstrazimiri/droneclear/internal/testutil"
)

// setupAPI wires a full API surface over an in-memory database
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	cfg := &config.Config{}
	cfg.Schema.Path = filepath.Join(t.TempDir(), "schema.json")
	cfg.Storage.PhotoDir = t.TempDir()
	cfg.Storage.BugReportDir = t.TempDir()

	services := service.NewServices(repos, nil, cfg, zap.NewNop())
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	v1 := r.Group("/api/v1")

	v1.GET("/categories", h.Catalogue.ListCategories)
	v1.GET("/components", h.Catalogue.ListComponents)
	v1.GET("/components/:pid", h.Catalogue.GetComponent)
	v1.POST("/components", h.Catalogue.CreateComponent)
	v1.PUT("/components/:pid", h.Catalogue.UpdateComponent)
	v1.DELETE("/components/:pid", h.Catalogue.DeleteComponent)
	v1.GET("/drone-models", h.Catalogue.ListModels)
	v1.POST("/drone-models", h.Catalogue.CreateModel)
	v1.GET("/schema", h.Schema.Get)
	v1.POST("/schema", h.Schema.Replace)
	v1.POST("/catalogue/import", h.Catalogue.Import)
	v1.GET("/catalogue/export", h.Catalogue.Export)
	v1.GET("/build-guides", h.Guide.List)
	v1.GET("/build-guides/:pid", h.Guide.Get)
	v1.POST("/build-guides", h.Guide.Create)
	v1.PUT("/build-guides/:pid", h.Guide.Update)
	v1.DELETE("/build-guides/:pid", h.Guide.Delete)
	v1.GET("/build-sessions", h.Session.List)
	v1.GET("/build-sessions/:sn", h.Session.Get)
	v1.POST("/build-sessions", h.Session.Create)
	v1.PUT("/build-sessions/:sn", h.Session.Update)
	v1.DELETE("/build-sessions/:sn", h.Session.Delete)
	v1.GET("/build-sessions/:sn/photos", h.Session.ListPhotos)
	v1.POST("/build-sessions/:sn/photos", h.Session.AddPhoto)
	v1.POST("/maintenance/bug-report", h.Maintenance.BugReport)

	return r, db
}
