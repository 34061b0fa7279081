package entity

import (
	"time"

	"gorm.io/datatypes"
)

// BuildGuide a reusable step-by-step assembly guide
type BuildGuide struct {
	ID                   string         `json:"id" gorm:"primaryKey;size:32"`
	PID                  string         `json:"pid" gorm:"column:pid;size:50;not null;uniqueIndex"`
	Name                 string         `json:"name" gorm:"size:255;not null"`
	Description          string         `json:"description" gorm:"type:text"`
	Difficulty           string         `json:"difficulty" gorm:"size:20;not null;default:beginner"`
	EstimatedTimeMinutes int            `json:"estimated_time_minutes" gorm:"not null;default:60"`
	DroneClass           string         `json:"drone_class" gorm:"size:50"`
	Thumbnail            string         `json:"thumbnail" gorm:"size:500"`
	DroneModelID         *string        `json:"drone_model_id" gorm:"size:32"`
	RequiredTools        datatypes.JSON `json:"required_tools"`
	Settings             JSONB          `json:"settings" gorm:"type:jsonb"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`

	DroneModel *DroneModel      `json:"drone_model,omitempty" gorm:"foreignKey:DroneModelID"`
	Steps      []BuildGuideStep `json:"steps,omitempty" gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE"`
}

func (BuildGuide) TableName() string {
	return "build_guides"
}

// Difficulty tiers
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// BuildGuideStep one ordered step within a guide. Order is unique per guide.
type BuildGuideStep struct {
	ID                   string         `json:"id" gorm:"primaryKey;size:32"`
	GuideID              string         `json:"guide_id" gorm:"size:32;not null;index:idx_guide_order,unique"`
	Order                int            `json:"order" gorm:"column:step_order;not null;index:idx_guide_order,unique"`
	Title                string         `json:"title" gorm:"size:255;not null"`
	Description          string         `json:"description" gorm:"type:text"`
	SafetyWarning        string         `json:"safety_warning" gorm:"type:text"`
	ReferenceImage       string         `json:"reference_image" gorm:"size:500"`
	STLFile              string         `json:"stl_file" gorm:"size:500"`
	BetaflightCLI        string         `json:"betaflight_cli" gorm:"type:text"`
	StepType             string         `json:"step_type" gorm:"size:50;not null;default:assembly"`
	EstimatedTimeMinutes int            `json:"estimated_time_minutes" gorm:"not null;default:5"`
	RequiredComponents   datatypes.JSON `json:"required_components"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (BuildGuideStep) TableName() string {
	return "build_guide_steps"
}

// Step types
const (
	StepTypeAssembly   = "assembly"
	StepTypeSoldering  = "soldering"
	StepTypeFirmware   = "firmware"
	StepType3DPrint    = "3d_print"
	StepTypeInspection = "inspection"
)

// BuildSession an active or completed build tracked by serial number
type BuildSession struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:32"`
	SerialNumber       string     `json:"serial_number" gorm:"size:50;not null;uniqueIndex"`
	GuideID            string     `json:"guide_id" gorm:"size:32;not null;index"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CurrentStep        int        `json:"current_step" gorm:"not null;default:0"`
	Status             string     `json:"status" gorm:"size:20;not null;default:in_progress"`
	Notes              string     `json:"notes" gorm:"type:text"`
	ComponentChecklist JSONB      `json:"component_checklist" gorm:"type:jsonb"`
	BuilderName        string     `json:"builder_name" gorm:"size:255"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Guide  *BuildGuide `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
	Photos []StepPhoto `json:"photos,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (BuildSession) TableName() string {
	return "build_sessions"
}

// Session statuses
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusAbandoned  = "abandoned"
)

// StepPhoto a photo captured at a build step, kept for the audit trail
type StepPhoto struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	SessionID  string    `json:"session_id" gorm:"size:32;not null;index"`
	StepID     string    `json:"step_id" gorm:"size:32;not null;index"`
	ImagePath  string    `json:"image_path" gorm:"size:500;not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	CapturedAt time.Time `json:"captured_at"`

	Session *BuildSession   `json:"session,omitempty" gorm:"foreignKey:SessionID"`
	Step    *BuildGuideStep `json:"step,omitempty" gorm:"foreignKey:StepID"`
}

func (StepPhoto) TableName() string {
	return "step_photos"
}
