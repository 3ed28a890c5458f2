package database

import (
	"gorm.io/gorm"
)

// MethodStats aggregates runs of one method.
type MethodStats struct {
	Method            string  `json:"method"`
	Runs              int64   `json:"runs"`
	Pixels            int64   `json:"pixels"`
	BlackPixels       int64   `json:"black_pixels"`
	AvgDurationMicros float64 `json:"avg_duration_micros"`
}

// RunStats holds statistics about recorded runs
type RunStats struct {
	TotalRuns   int64         `json:"total_runs"`
	TotalPixels int64         `json:"total_pixels"`
	BlackPixels int64         `json:"black_pixels"`
	Methods     []MethodStats `json:"methods"`
}

// GetRunStats returns run statistics grouped by method
func GetRunStats(db *gorm.DB) (*RunStats, error) {
	stats := &RunStats{Methods: []MethodStats{}}

	err := db.Model(&DitherRun{}).
		Select("method, COUNT(*) AS runs, " +
			"COALESCE(SUM(output_width * output_height), 0) AS pixels, " +
			"COALESCE(SUM(black_pixels), 0) AS black_pixels, " +
			"COALESCE(AVG(duration_micros), 0) AS avg_duration_micros").
		Group("method").
		Order("method").
		Scan(&stats.Methods).Error
	if err != nil {
		return nil, err
	}

	for _, m := range stats.Methods {
		stats.TotalRuns += m.Runs
		stats.TotalPixels += m.Pixels
		stats.BlackPixels += m.BlackPixels
	}

	return stats, nil
}
