package database

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewDitherRun builds a run record with params encoded as JSON.
func NewDitherRun(method, preset string, params RunParams) (*DitherRun, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run params: %w", err)
	}
	return &DitherRun{
		Method: method,
		Preset: preset,
		Params: datatypes.JSON(encoded),
	}, nil
}

// RecordRun stores a run.
func RecordRun(db *gorm.DB, run *DitherRun) error {
	if err := db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(db *gorm.DB, limit int) ([]DitherRun, error) {
	var runs []DitherRun
	if err := db.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// CleanupOldRuns deletes runs older than retention and returns how many
// were removed.
func CleanupOldRuns(db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := db.Where("created_at < ?", cutoff).Delete(&DitherRun{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
