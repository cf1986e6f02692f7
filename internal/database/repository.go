package database

import (
	"database/sql"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
)

const exportColumns = `id, run_id, file_name, file_path, strategy, pages, size_bytes, status,
	error_kind, error_message, duration_ms, created_at`

// Export history operations

func CreateExport(rec *models.ExportRecord) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO exports (run_id, file_name, file_path, strategy, pages, size_bytes,
			  status, error_kind, error_message, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.Exec(query, rec.RunID, rec.FileName, rec.FilePath, rec.Strategy, rec.Pages,
		rec.SizeBytes, rec.Status, rec.ErrorKind, rec.ErrorMessage, rec.DurationMS)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()

	for _, w := range rec.Warnings {
		if _, err := tx.Exec(`INSERT INTO export_warnings (export_id, message) VALUES (?, ?)`, id, w); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	rec.ID = int(id)
	return nil
}

func GetExport(id int) (*models.ExportRecord, error) {
	rec, err := scanExport(DB.QueryRow(`SELECT `+exportColumns+` FROM exports WHERE id=?`, id))
	if err != nil {
		return nil, err
	}
	rec.Warnings, err = getExportWarnings(rec.ID)
	return rec, err
}

func GetExportByRunID(runID string) (*models.ExportRecord, error) {
	rec, err := scanExport(DB.QueryRow(`SELECT `+exportColumns+` FROM exports WHERE run_id=?`, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Warnings, err = getExportWarnings(rec.ID)
	return rec, err
}

// GetRecentExports lists the newest exports first. Warnings are not loaded.
func GetRecentExports(limit int) ([]*models.ExportRecord, error) {
	rows, err := DB.Query(`SELECT `+exportColumns+` FROM exports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.ExportRecord{}
	for rows.Next() {
		rec, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func DeleteExport(id int) error {
	_, err := DB.Exec(`DELETE FROM exports WHERE id=?`, id)
	return err
}

// DeleteExportsBefore prunes history older than t and returns the number of rows removed.
func DeleteExportsBefore(t time.Time) (int64, error) {
	result, err := DB.Exec(`DELETE FROM exports WHERE created_at < ?`, t.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats operations

func GetExportStats() (map[string]int, error) {
	rows, err := DB.Query(`SELECT status, COUNT(*) FROM exports GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{models.ExportSucceeded: 0, models.ExportFailed: 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func GetStrategyStats() (map[string]int, error) {
	rows, err := DB.Query(`SELECT strategy, COUNT(*) FROM exports WHERE status = 'succeeded' GROUP BY strategy`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var strategy string
		var count int
		if err := rows.Scan(&strategy, &count); err != nil {
			return nil, err
		}
		stats[strategy] = count
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (*models.ExportRecord, error) {
	rec := &models.ExportRecord{}
	var fileName, filePath, errKind, errMsg sql.NullString
	err := s.Scan(&rec.ID, &rec.RunID, &fileName, &filePath, &rec.Strategy, &rec.Pages,
		&rec.SizeBytes, &rec.Status, &errKind, &errMsg, &rec.DurationMS, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.FileName = fileName.String
	rec.FilePath = filePath.String
	rec.ErrorKind = errKind.String
	rec.ErrorMessage = errMsg.String
	return rec, nil
}

func getExportWarnings(exportID int) ([]string, error) {
	rows, err := DB.Query(`SELECT message FROM export_warnings WHERE export_id=? ORDER BY id`, exportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warnings []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		warnings = append(warnings, msg)
	}
	return warnings, rows.Err()
}
