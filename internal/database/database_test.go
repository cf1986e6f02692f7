package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
	_ "github.com/mattn/go-sqlite3"
)

// createTestDB creates a temporary test database
func createTestDB(t *testing.T) *sql.DB {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// setupTest sets up a test database and returns a cleanup function
func setupTest(t *testing.T) (oldDB *sql.DB, cleanup func()) {
	db := createTestDB(t)
	oldDB = DB
	DB = db

	return oldDB, func() {
		DB = oldDB
		db.Close()
	}
}

func sampleRecord(runID string) *models.ExportRecord {
	return &models.ExportRecord{
		RunID:      runID,
		FileName:   "John_Doe_2026-10-17.pdf",
		FilePath:   "/tmp/John_Doe_2026-10-17.pdf",
		Strategy:   "primary",
		Pages:      2,
		SizeBytes:  48213,
		Status:     models.ExportSucceeded,
		DurationMS: 1250,
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var name string
	if err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='exports'`).Scan(&name); err != nil {
		t.Fatalf("exports table missing: %v", err)
	}
}

func TestInitializeAndClose(t *testing.T) {
	oldDB := DB
	defer func() { DB = oldDB }()

	if err := Initialize(filepath.Join(t.TempDir(), "history.db")); err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	if DB == nil {
		t.Fatal("DB not set after Initialize")
	}
	if err := CreateExport(sampleRecord("run-init")); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}

	if err := Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
	if DB != nil {
		t.Error("DB should be cleared after Close")
	}
	if err := Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

// TestCreateExport tests creation with the unique run constraint
func TestCreateExport(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	rec := sampleRecord("run-1")
	rec.Warnings = []string{"Missing email", "No work experience"}

	if err := CreateExport(rec); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}
	if rec.ID == 0 {
		t.Error("export ID not set after creation")
	}

	if err := CreateExport(sampleRecord("run-1")); err == nil {
		t.Error("should have failed to create duplicate export with same run ID")
	}

	got, err := GetExport(rec.ID)
	if err != nil {
		t.Fatalf("failed to get export: %v", err)
	}
	if got.FileName != rec.FileName || got.Pages != 2 || got.SizeBytes != 48213 {
		t.Errorf("unexpected export: %+v", got)
	}
	if len(got.Warnings) != 2 || got.Warnings[0] != "Missing email" {
		t.Errorf("expected warnings in insertion order, got %v", got.Warnings)
	}
}

func TestCreateExportRejectsUnknownStatus(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	rec := sampleRecord("run-bad")
	rec.Status = "pending"
	if err := CreateExport(rec); err == nil {
		t.Error("should have rejected an unknown status")
	}

	rec = sampleRecord("run-bad-strategy")
	rec.Strategy = "ocr"
	if err := CreateExport(rec); err == nil {
		t.Error("should have rejected an unknown strategy")
	}
}

func TestFailedExportKeepsError(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	rec := &models.ExportRecord{
		RunID:        "run-failed",
		Strategy:     "fallback",
		Status:       models.ExportFailed,
		ErrorKind:    "both_strategies_failed",
		ErrorMessage: "capture failed",
	}
	if err := CreateExport(rec); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}

	got, err := GetExportByRunID("run-failed")
	if err != nil {
		t.Fatalf("failed to get export: %v", err)
	}
	if got == nil {
		t.Fatal("expected export to be found")
	}
	if got.ErrorKind != "both_strategies_failed" || got.FileName != "" {
		t.Errorf("unexpected export: %+v", got)
	}
}

func TestGetExportByRunIDMissing(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	got, err := GetExportByRunID("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing run, got %+v", got)
	}
}

func TestGetRecentExports(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		if err := CreateExport(sampleRecord(fmt.Sprintf("run-%d", i))); err != nil {
			t.Fatalf("failed to create export: %v", err)
		}
	}

	recent, err := GetRecentExports(3)
	if err != nil {
		t.Fatalf("failed to list exports: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(recent))
	}
	if recent[0].RunID != "run-4" {
		t.Errorf("expected newest export first, got %s", recent[0].RunID)
	}
}

// TestCascadeDelete verifies warnings are removed with their export
func TestCascadeDelete(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	rec := sampleRecord("run-cascade")
	rec.Warnings = []string{"Missing phone"}
	if err := CreateExport(rec); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}

	if err := DeleteExport(rec.ID); err != nil {
		t.Fatalf("failed to delete export: %v", err)
	}

	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM export_warnings WHERE export_id=?`, rec.ID).Scan(&count); err != nil {
		t.Fatalf("failed to count warnings: %v", err)
	}
	if count != 0 {
		t.Errorf("expected warnings to cascade, %d left", count)
	}
}

func TestForeignKeyConstraint(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	_, err := DB.Exec(`INSERT INTO export_warnings (export_id, message) VALUES (?, ?)`, 9999, "orphan")
	if err == nil {
		t.Error("should have failed to insert warning for missing export")
	}
}

func TestDeleteExportsBefore(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	if err := CreateExport(sampleRecord("old")); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}
	if _, err := DB.Exec(`UPDATE exports SET created_at = '2020-01-01 00:00:00' WHERE run_id = 'old'`); err != nil {
		t.Fatalf("failed to age export: %v", err)
	}
	if err := CreateExport(sampleRecord("new")); err != nil {
		t.Fatalf("failed to create export: %v", err)
	}

	n, err := DeleteExportsBefore(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned export, got %d", n)
	}
	if got, _ := GetExportByRunID("new"); got == nil {
		t.Error("recent export should survive pruning")
	}
}

func TestExportStats(t *testing.T) {
	_, cleanup := setupTest(t)
	defer cleanup()

	ok := sampleRecord("a")
	sections := sampleRecord("b")
	sections.Strategy = "sections"
	failed := sampleRecord("c")
	failed.Status = models.ExportFailed
	for _, rec := range []*models.ExportRecord{ok, sections, failed} {
		if err := CreateExport(rec); err != nil {
			t.Fatalf("failed to create export: %v", err)
		}
	}

	stats, err := GetExportStats()
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats[models.ExportSucceeded] != 2 || stats[models.ExportFailed] != 1 {
		t.Errorf("unexpected status stats: %v", stats)
	}

	byStrategy, err := GetStrategyStats()
	if err != nil {
		t.Fatalf("failed to get strategy stats: %v", err)
	}
	if byStrategy["primary"] != 1 || byStrategy["sections"] != 1 {
		t.Errorf("unexpected strategy stats: %v", byStrategy)
	}
}
