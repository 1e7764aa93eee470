package store

import "fmt"

// SaveOverride 保存一条表头改写，同 raw_header 直接覆盖
func (s *Store) SaveOverride(rawHeader, canonicalHeader string) error {
	_, err := s.db.Exec(`
		INSERT INTO mapping_overrides (raw_header, canonical_header) VALUES (?, ?)
		ON CONFLICT(raw_header) DO UPDATE SET canonical_header = ?, updated_at = CURRENT_TIMESTAMP
	`, rawHeader, canonicalHeader, canonicalHeader)
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// DeleteOverride 删除一条表头改写
func (s *Store) DeleteOverride(rawHeader string) error {
	_, err := s.db.Exec("DELETE FROM mapping_overrides WHERE raw_header = ?", rawHeader)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// ListOverrides 读取全部表头改写
func (s *Store) ListOverrides() (map[string]string, error) {
	rows, err := s.db.Query("SELECT raw_header, canonical_header FROM mapping_overrides")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[string]string)
	for rows.Next() {
		var raw, canonical string
		if err := rows.Scan(&raw, &canonical); err != nil {
			return nil, err
		}
		overrides[raw] = canonical
	}

	return overrides, rows.Err()
}

// ReplaceOverrides 整体替换表头改写（事务内先清后写）
func (s *Store) ReplaceOverrides(overrides map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mapping_overrides"); err != nil {
		return fmt.Errorf("failed to clear overrides: %w", err)
	}
	for raw, canonical := range overrides {
		if _, err := tx.Exec(
			"INSERT INTO mapping_overrides (raw_header, canonical_header) VALUES (?, ?)",
			raw, canonical,
		); err != nil {
			return fmt.Errorf("failed to insert override: %w", err)
		}
	}

	return tx.Commit()
}
