package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// MaintenanceService the two operator conveniences the visualizer exposes: a
// restart trigger and a bug-report drop box. Neither is part of steady-state
// request handling.
type MaintenanceService struct {
	bugReportDir string
	restart      func()
	logger       *zap.Logger
}

func NewMaintenanceService(bugReportDir string, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{bugReportDir: bugReportDir, logger: logger}
}

// OnRestart registers the callback invoked by a restart request. The server
// wires this to its graceful shutdown; the process supervisor brings it back.
func (s *MaintenanceService) OnRestart(fn func()) {
	s.restart = fn
}

// Restart triggers the registered restart callback
func (s *MaintenanceService) Restart() error {
	if s.restart == nil {
		return fmt.Errorf("restart is not wired on this deployment")
	}
	s.logger.Warn("Restart requested via API")
	// Let the response flush before the listener closes
	go func() {
		time.Sleep(500 * time.Millisecond)
		s.restart()
	}()
	return nil
}

// SaveBugReport persists a free-text report to a timestamped file
func (s *MaintenanceService) SaveBugReport(text string) (string, error) {
	if err := os.MkdirAll(s.bugReportDir, 0o755); err != nil {
		return "", fmt.Errorf("create bug report dir: %w", err)
	}
	name := fmt.Sprintf("bug_report_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.bugReportDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write bug report: %w", err)
	}
	s.logger.Info("Bug report saved", zap.String("file", name))
	return name, nil
}
