package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

// SessionHandler build session CRUD and step photo capture
type SessionHandler struct {
	svc *service.SessionService
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// List GET /build-sessions
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Get GET /build-sessions/:sn
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.svc.Get(c.Request.Context(), c.Param("sn"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build session not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// Create POST /build-sessions, allocates the serial number
func (h *SessionHandler) Create(c *gin.Context) {
	var input service.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	session, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build guide not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Update PUT /build-sessions/:sn
func (h *SessionHandler) Update(c *gin.Context) {
	var input service.SessionUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	session, err := h.svc.Update(c.Request.Context(), c.Param("sn"), input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build session not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, session)
}

// Delete DELETE /build-sessions/:sn. Photos cascade.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("sn")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build session not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPhotos GET /build-sessions/:sn/photos
func (h *SessionHandler) ListPhotos(c *gin.Context) {
	photos, err := h.svc.ListPhotos(c.Request.Context(), c.Param("sn"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "build session not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, photos)
}

// AddPhoto POST /build-sessions/:sn/photos takes a multipart form with "step" and
// "image" fields. 400 when either is missing, 404 when the step belongs to a
// different guide than the session's.
func (h *SessionHandler) AddPhoto(c *gin.Context) {
	stepID := c.PostForm("step")
	if stepID == "" {
		BadRequest(c, "missing step field")
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		BadRequest(c, "missing image field")
		return
	}

	photo, err := h.svc.AddPhoto(c.Request.Context(), c.Param("sn"), stepID, c.PostForm("notes"), file)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "session or step not found")
		case errors.Is(err, service.ErrStepNotInGuide):
			NotFound(c, "step does not belong to this session's guide")
		default:
			InternalError(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, photo)
}
