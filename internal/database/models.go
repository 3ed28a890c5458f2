package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DitherRun records one processed buffer.
type DitherRun struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Method         string         `gorm:"size:64;not null;index" json:"method"`
	Preset         string         `gorm:"size:64;index" json:"preset,omitempty"`
	Width          int            `gorm:"not null" json:"width"`
	Height         int            `gorm:"not null" json:"height"`
	OutputWidth    int            `gorm:"not null" json:"output_width"`
	OutputHeight   int            `gorm:"not null" json:"output_height"`
	BlackPixels    int64          `gorm:"not null;default:0" json:"black_pixels"`
	DurationMicros int64          `gorm:"not null;default:0" json:"duration_micros"`
	ClientIP       string         `gorm:"size:45" json:"-"`
	Params         datatypes.JSON `json:"params,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
}

// BeforeCreate sets UUID if not already set
func (r *DitherRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RunParams is stored as JSON on each run.
type RunParams struct {
	Threshold *int   `json:"threshold,omitempty"`
	FitWidth  int    `json:"fit_width,omitempty"`
	FitHeight int    `json:"fit_height,omitempty"`
	FitMode   string `json:"fit_mode,omitempty"`
}

// GetAllModels returns all models for migration
func GetAllModels() []interface{} {
	return []interface{}{
		&DitherRun{},
	}
}
