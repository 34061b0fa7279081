package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/service"
)

// Handlers handler collection
type Handlers struct {
	Catalogue   *CatalogueHandler
	Schema      *SchemaHandler
	Guide       *GuideHandler
	Session     *SessionHandler
	Maintenance *MaintenanceHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Catalogue:   NewCatalogueHandler(svc.Catalogue),
		Schema:      NewSchemaHandler(svc.Schema),
		Guide:       NewGuideHandler(svc.Guide),
		Session:     NewSessionHandler(svc.Session),
		Maintenance: NewMaintenanceHandler(svc.Maintenance),
	}
}

// The visualizer consumes resources directly, so responses are bare objects
// and arrays; errors carry a single "error" key.

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// Pagination metadata of a list response
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// GetPagination reads page/page_size query params with sane bounds
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 50

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 500 {
			pageSize = v
		}
	}
	return page, pageSize
}
