package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Repositories bundles all repositories for wiring
type Repositories struct {
	Category   *CategoryRepository
	Component  *ComponentRepository
	DroneModel *DroneModelRepository
	Guide      *GuideRepository
	Session    *SessionRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Category:   NewCategoryRepository(db),
		Component:  NewComponentRepository(db),
		DroneModel: NewDroneModelRepository(db),
		Guide:      NewGuideRepository(db),
		Session:    NewSessionRepository(db),
	}
}

// generateID 32-char hex row ID
func generateID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// NewID exposes row ID generation to services that assemble entities themselves
func NewID() string {
	return generateID()
}
