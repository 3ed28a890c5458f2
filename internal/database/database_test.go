package database

import (
	"encoding/json"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/rmitchellscott/monodither/internal/config"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Initialize(config.DatabaseConfig{Type: "sqlite", DataDir: MemoryDataDir}, "warn")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func record(t *testing.T, db *gorm.DB, method string, w, h int, black int64, micros int64) *DitherRun {
	t.Helper()
	run, err := NewDitherRun(method, "", RunParams{FitMode: "fit"})
	if err != nil {
		t.Fatal(err)
	}
	run.Width, run.Height = w, h
	run.OutputWidth, run.OutputHeight = w, h
	run.BlackPixels = black
	run.DurationMicros = micros
	if err := RecordRun(db, run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	return run
}

func TestInitializeNone(t *testing.T) {
	db, err := Initialize(config.DatabaseConfig{Type: TypeNone}, "info")
	if err != nil || db != nil {
		t.Errorf("Initialize(none) = %v, %v; want nil, nil", db, err)
	}
}

func TestInitializeUnsupported(t *testing.T) {
	if _, err := Initialize(config.DatabaseConfig{Type: "oracle"}, "info"); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}

func TestRecordAndStats(t *testing.T) {
	db := openTestDB(t)

	first := record(t, db, "atkinson", 4, 4, 6, 100)
	record(t, db, "atkinson", 2, 2, 1, 300)
	record(t, db, "bayer", 10, 1, 5, 50)

	if first.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("BeforeCreate should assign an ID")
	}

	stats, err := GetRunStats(db)
	if err != nil {
		t.Fatalf("GetRunStats: %v", err)
	}
	if stats.TotalRuns != 3 || stats.TotalPixels != 30 || stats.BlackPixels != 12 {
		t.Errorf("totals = %+v", stats)
	}
	if len(stats.Methods) != 2 {
		t.Fatalf("got %d method rows, want 2", len(stats.Methods))
	}
	atk := stats.Methods[0]
	if atk.Method != "atkinson" || atk.Runs != 2 || atk.Pixels != 20 || atk.AvgDurationMicros != 200 {
		t.Errorf("atkinson stats = %+v", atk)
	}

	var stored DitherRun
	if err := db.First(&stored, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("First: %v", err)
	}
	var params RunParams
	if err := json.Unmarshal(stored.Params, &params); err != nil {
		t.Fatalf("params: %v", err)
	}
	if params.FitMode != "fit" {
		t.Errorf("params = %+v", params)
	}
}

func TestRecentAndCleanup(t *testing.T) {
	db := openTestDB(t)

	old := record(t, db, "threshold", 1, 1, 0, 1)
	if err := db.Model(old).Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatal(err)
	}
	record(t, db, "threshold", 1, 1, 1, 1)

	runs, err := RecentRuns(db, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 || runs[1].ID != old.ID {
		t.Fatalf("RecentRuns order wrong: %+v", runs)
	}

	removed, err := CleanupOldRuns(db, 24*time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldRuns: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed %d runs, want 1", removed)
	}
}

func TestStatsEmpty(t *testing.T) {
	db := openTestDB(t)
	stats, err := GetRunStats(db)
	if err != nil {
		t.Fatalf("GetRunStats: %v", err)
	}
	if stats.TotalRuns != 0 || len(stats.Methods) != 0 {
		t.Errorf("stats = %+v, want empty", stats)
	}
}
