package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

// CatalogueHandler categories, components, drone models and the bulk
// import/export endpoints
type CatalogueHandler struct {
	svc *service.CatalogueService
}

func NewCatalogueHandler(svc *service.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{svc: svc}
}

// ListCategories GET /categories
func (h *CatalogueHandler) ListCategories(c *gin.Context) {
	cats, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ListComponents GET /components?category=&page=&page_size=
func (h *CatalogueHandler) ListComponents(c *gin.Context) {
	page, pageSize := GetPagination(c)
	comps, total, err := h.svc.ListComponents(c.Request.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"components": comps,
		"pagination": Pagination{Page: page, PageSize: pageSize, Total: total},
	})
}

// GetComponent GET /components/:pid
func (h *CatalogueHandler) GetComponent(c *gin.Context) {
	comp, err := h.svc.GetComponent(c.Request.Context(), c.Param("pid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "component not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, comp)
}

// CreateComponent POST /components
func (h *CatalogueHandler) CreateComponent(c *gin.Context) {
	var input service.ComponentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	comp, err := h.svc.CreateComponent(c.Request.Context(), input)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, comp)
}

// UpdateComponent PUT /components/:pid
func (h *CatalogueHandler) UpdateComponent(c *gin.Context) {
	var input service.ComponentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	comp, err := h.svc.UpdateComponent(c.Request.Context(), c.Param("pid"), input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "component not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, comp)
}

// DeleteComponent DELETE /components/:pid
func (h *CatalogueHandler) DeleteComponent(c *gin.Context) {
	if err := h.svc.DeleteComponent(c.Request.Context(), c.Param("pid")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "component not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListModels GET /drone-models
func (h *CatalogueHandler) ListModels(c *gin.Context) {
	models, err := h.svc.ListModels(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, models)
}

// GetModel GET /drone-models/:pid
func (h *CatalogueHandler) GetModel(c *gin.Context) {
	model, err := h.svc.GetModel(c.Request.Context(), c.Param("pid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "drone model not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, model)
}

// CreateModel POST /drone-models
func (h *CatalogueHandler) CreateModel(c *gin.Context) {
	var model entity.DroneModel
	if err := c.ShouldBindJSON(&model); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if model.PID == "" || model.Name == "" {
		BadRequest(c, "pid and name are required")
		return
	}
	if err := h.svc.CreateModel(c.Request.Context(), &model); err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, model)
}

// UpdateModel PUT /drone-models/:pid
func (h *CatalogueHandler) UpdateModel(c *gin.Context) {
	var input entity.DroneModel
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	model, err := h.svc.UpdateModel(c.Request.Context(), c.Param("pid"), &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "drone model not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, model)
}

// DeleteModel DELETE /drone-models/:pid
func (h *CatalogueHandler) DeleteModel(c *gin.Context) {
	if err := h.svc.DeleteModel(c.Request.Context(), c.Param("pid")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "drone model not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// Import POST /catalogue/import does a bulk upsert of a flat part array. A bad
// entry is data, not a transport failure: the response is always 200 with
// per-index errors unless the body itself is malformed.
func (h *CatalogueHandler) Import(c *gin.Context) {
	var parts []map[string]interface{}
	if err := c.ShouldBindJSON(&parts); err != nil {
		BadRequest(c, "request body must be a JSON array of part objects")
		return
	}
	report, err := h.svc.Import(c.Request.Context(), parts)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export GET /catalogue/export?category= returns flat part objects, re-importable
func (h *CatalogueHandler) Export(c *gin.Context) {
	file, err := h.svc.Export(c.Request.Context(), c.Query("category"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	flat := []map[string]interface{}{}
	for slug, list := range file.Components {
		for _, obj := range list {
			obj["category"] = slug
			flat = append(flat, obj)
		}
	}
	c.JSON(http.StatusOK, flat)
}
