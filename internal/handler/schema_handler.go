package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/schema"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

// SchemaHandler read/write access to the master parts schema document
type SchemaHandler struct {
	svc *service.SchemaService
}

func NewSchemaHandler(svc *service.SchemaService) *SchemaHandler {
	return &SchemaHandler{svc: svc}
}

// Get GET /schema. 404 when the backing file is absent, 500 on parse failure
func (h *SchemaHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get()
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			NotFound(c, "schema file not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Replace POST /schema. The body is the full replacement document. Invalid
// documents are rejected with the complete list of problems and nothing is
// written.
func (h *SchemaHandler) Replace(c *gin.Context) {
	var doc schema.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, "request body must be a JSON object")
		return
	}

	if err := h.svc.Replace(doc); err != nil {
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "schema validation failed",
				"errors": vErr.Problems,
			})
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schema updated successfully."})
}
