package store

import (
	"fmt"
	"strings"
	"time"

	"consolidator/internal/model"
)

// BatchRecord 一次批次上传的落库记录
type BatchRecord struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"sessionId"`
	BatchNumber  int       `json:"batchNumber"`
	StartRow     int       `json:"startRow"`
	EndRow       int       `json:"endRow"`
	TotalRows    int       `json:"totalRows"`
	UploadedRows int       `json:"uploadedRows"`
	FailedRows   int       `json:"failedRows"`
	SkippedRows  int       `json:"skippedRows"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaveBatchOutcome 记录一次批次上传的结果
func (s *Store) SaveBatchOutcome(sessionID string, batch *model.Batch, outcome *model.UploadOutcome) error {
	_, err := s.db.Exec(`
		INSERT INTO export_batches
			(session_id, batch_number, start_row, end_row, total_rows, uploaded_rows, failed_rows, skipped_rows, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, batch.Number, batch.StartRow, batch.EndRow,
		outcome.Total, outcome.Uploaded, outcome.Failed, outcome.Skipped,
		string(batch.Status), strings.Join(outcome.Errors, "; "))
	if err != nil {
		return fmt.Errorf("failed to save batch outcome: %w", err)
	}
	return nil
}

// ListBatchRecords 读取某会话的批次上传历史
func (s *Store) ListBatchRecords(sessionID string) ([]BatchRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, batch_number, start_row, end_row, total_rows,
			uploaded_rows, failed_rows, skipped_rows, status, error_message, created_at
		FROM export_batches WHERE session_id = ? ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var r BatchRecord
		if err := rows.Scan(&r.ID, &r.SessionID, &r.BatchNumber, &r.StartRow, &r.EndRow, &r.TotalRows,
			&r.UploadedRows, &r.FailedRows, &r.SkippedRows, &r.Status, &r.ErrorMessage, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
