package store

import (
	"fmt"
	"time"
)

// ImportLog 一次文件摄取的记录
type ImportLog struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	SheetCount   int       `json:"sheetCount"`
	RowCount     int       `json:"rowCount"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateImportLog 记录一次文件摄取结果
func (s *Store) CreateImportLog(filename string, sheetCount, rowCount int, status, errorMessage string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, sheet_count, row_count, status, error_message)
		VALUES (?, ?, ?, ?, ?)
	`, filename, sheetCount, rowCount, status, errorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// ListImportLogs 按时间倒序读取最近的摄取记录
func (s *Store) ListImportLogs(limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, filename, sheet_count, row_count, status, error_message, created_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []ImportLog
	for rows.Next() {
		var log ImportLog
		if err := rows.Scan(&log.ID, &log.Filename, &log.SheetCount, &log.RowCount, &log.Status, &log.ErrorMessage, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
