package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tedstrazimiri/droneclear/internal/service"
)

// MaintenanceHandler restart trigger and bug-report drop box
type MaintenanceHandler struct {
	svc *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

// Restart POST /maintenance/restart
func (h *MaintenanceHandler) Restart(c *gin.Context) {
	if err := h.svc.Restart(); err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Server restarting..."})
}

type bugReportInput struct {
	Report string `json:"report" binding:"required"`
}

// BugReport POST /maintenance/bug-report
func (h *MaintenanceHandler) BugReport(c *gin.Context) {
	var input bugReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "report text is required")
		return
	}
	name, err := h.svc.SaveBugReport(input.Report)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bug report saved.", "file": name})
}
