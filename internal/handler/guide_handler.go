package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

// GuideHandler build guide CRUD
type GuideHandler struct {
	svc *service.GuideService
}

func NewGuideHandler(svc *service.GuideService) *GuideHandler {
	return &GuideHandler{svc: svc}
}

// guideSummary lightweight list projection; steps only appear in detail views
type guideSummary struct {
	PID                  string `json:"pid"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Difficulty           string `json:"difficulty"`
	EstimatedTimeMinutes int    `json:"estimated_time_minutes"`
	DroneClass           string `json:"drone_class"`
	Thumbnail            string `json:"thumbnail"`
}

func summarize(g *entity.BuildGuide) guideSummary {
	return guideSummary{
		PID:                  g.PID,
		Name:                 g.Name,
		Description:          g.Description,
		Difficulty:           g.Difficulty,
		EstimatedTimeMinutes: g.EstimatedTimeMinutes,
		DroneClass:           g.DroneClass,
		Thumbnail:            g.Thumbnail,
	}
}

// List GET /build-guides
func (h *GuideHandler) List(c *gin.Context) {
	guides, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	out := make([]guideSummary, 0, len(guides))
	for i := range guides {
		out = append(out, summarize(&guides[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get GET /build-guides/:pid returns the full guide with embedded ordered steps
func (h *GuideHandler) Get(c *gin.Context) {
	guide, err := h.svc.Get(c.Request.Context(), c.Param("pid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build guide not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, guide)
}

// Create POST /build-guides
func (h *GuideHandler) Create(c *gin.Context) {
	var input service.GuideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	guide, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isInputError(err) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, guide)
}

// Update PUT /build-guides/:pid replaces the whole step set
func (h *GuideHandler) Update(c *gin.Context) {
	var input service.GuideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	guide, err := h.svc.Update(c.Request.Context(), c.Param("pid"), input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build guide not found")
			return
		}
		if isInputError(err) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, guide)
}

// Delete DELETE /build-guides/:pid. Steps cascade.
func (h *GuideHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("pid")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build guide not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// isInputError distinguishes caller mistakes from store failures
func isInputError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unknown drone model")
}
