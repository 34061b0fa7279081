package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSONB open-ended JSON mapping column (spec payloads, relations, checklists)
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Category component category
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Slug      string    `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Components []Component `json:"components,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (Category) TableName() string {
	return "categories"
}

// Component a catalogued drone part. Core fields live in columns; everything
// category-specific stays in SchemaData.
type Component struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	PID          string    `json:"pid" gorm:"column:pid;size:50;not null;uniqueIndex"`
	CategoryID   string    `json:"category_id" gorm:"size:32;not null;index"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Manufacturer string    `json:"manufacturer" gorm:"size:255;default:Unknown"`
	Description  string    `json:"description" gorm:"type:text"`
	Link         string    `json:"link" gorm:"size:500"`
	ApproxPrice  string    `json:"approx_price" gorm:"size:100"`
	ImageFile    string    `json:"image_file" gorm:"size:500"`
	ManualLink   string    `json:"manual_link" gorm:"size:500"`
	SchemaData   JSONB     `json:"schema_data" gorm:"type:jsonb"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Component) TableName() string {
	return "components"
}

// DroneModel a complete vehicle whose Relations mapping names the component
// PIDs used per role. Relations are soft references, never enforced.
type DroneModel struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	PID         string    `json:"pid" gorm:"column:pid;size:50;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageFile   string    `json:"image_file" gorm:"size:255"`
	PDFFile     string    `json:"pdf_file" gorm:"size:255"`
	VehicleType string    `json:"vehicle_type" gorm:"size:100"`
	BuildClass  string    `json:"build_class" gorm:"size:100"`
	Relations   JSONB     `json:"relations" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DroneModel) TableName() string {
	return "drone_models"
}
