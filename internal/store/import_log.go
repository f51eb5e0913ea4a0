package store

import "fmt"

// CreateImportLog 가져오기 기록 생성, import_log id 반환
func (s *Store) CreateImportLog(batchID, filename, service string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (batch_id, filename, service, status)
		VALUES (?, ?, ?, 'processing')
	`, batchID, filename, service)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// UpdateImportLog 가져오기 완료 기록
func (s *Store) UpdateImportLog(id int64, totalRows, importedRows, errorRows int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			total_rows = ?,
			imported_rows = ?,
			error_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalRows, importedRows, errorRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ImportLog 가져오기 기록
type ImportLog struct {
	ID           int64  `json:"id"`
	BatchID      string `json:"batchId"`
	Filename     string `json:"filename"`
	Service      string `json:"service"`
	TotalRows    int    `json:"totalRows"`
	ImportedRows int    `json:"importedRows"`
	ErrorRows    int    `json:"errorRows"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage"`
}

// GetImportLog 가져오기 기록 조회
func (s *Store) GetImportLog(id int64) (*ImportLog, error) {
	var l ImportLog
	err := s.db.QueryRow(`
		SELECT id, batch_id, filename, service, total_rows, imported_rows, error_rows, status, error_message
		FROM import_logs WHERE id = ?
	`, id).Scan(&l.ID, &l.BatchID, &l.Filename, &l.Service, &l.TotalRows, &l.ImportedRows, &l.ErrorRows, &l.Status, &l.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to get import log: %w", err)
	}
	return &l, nil
}

// ListImportLogs 배치의 시트별 가져오기 기록
func (s *Store) ListImportLogs(batchID string) ([]ImportLog, error) {
	rows, err := s.db.Query(`
		SELECT id, batch_id, filename, service, total_rows, imported_rows, error_rows, status, error_message
		FROM import_logs WHERE batch_id = ? ORDER BY id
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	var out []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.BatchID, &l.Filename, &l.Service, &l.TotalRows, &l.ImportedRows, &l.ErrorRows, &l.Status, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
