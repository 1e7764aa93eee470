package store

import (
	"path/filepath"
	"testing"

	"consolidator/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "consolidator.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStore_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "consolidator.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := st.SetConfig("speed_mode", "turbo"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	st.Close()

	st2, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	value, err := st2.GetConfig("speed_mode")
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if value != "turbo" {
		t.Fatalf("speed_mode = %q", value)
	}
}

func TestStore_ConfigRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, err := st.GetConfig("missing"); err == nil {
		t.Fatalf("missing key should error")
	}

	if err := st.SetConfigInt("batch_size", 80); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.SetConfigInt("batch_size", 120); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	size, err := st.GetConfigInt("batch_size")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if size != 120 {
		t.Fatalf("batch_size = %d", size)
	}

	all, err := st.GetAllConfig()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if all["batch_size"] != "120" {
		t.Fatalf("all = %v", all)
	}
}

func TestStore_Overrides(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if err := st.SaveOverride("emp_email", "email"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.SaveOverride("emp_email", "secondary_email"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := st.SaveOverride("fname", "first_name"); err != nil {
		t.Fatalf("save: %v", err)
	}

	overrides, err := st.ListOverrides()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(overrides) != 2 || overrides["emp_email"] != "secondary_email" {
		t.Fatalf("overrides = %v", overrides)
	}

	if err := st.DeleteOverride("fname"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.ReplaceOverrides(map[string]string{"company": "company_name"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	overrides, err = st.ListOverrides()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(overrides) != 1 || overrides["company"] != "company_name" {
		t.Fatalf("overrides after replace = %v", overrides)
	}
}

func TestStore_ImportLogs(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, err := st.CreateImportLog("a.xlsx", 2, 120, "completed", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.CreateImportLog("broken.xlsx", 0, 0, "failed", "zip: not a valid zip file"); err != nil {
		t.Fatalf("create: %v", err)
	}

	logs, err := st.ListImportLogs(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs = %d", len(logs))
	}
	// 倒序，最新在前
	if logs[0].Filename != "broken.xlsx" || logs[0].Status != "failed" {
		t.Fatalf("latest log: %+v", logs[0])
	}
	if logs[1].RowCount != 120 {
		t.Fatalf("older log: %+v", logs[1])
	}
}

func TestStore_BatchOutcomes(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	batch := &model.Batch{Number: 1, StartRow: 1, EndRow: 80, Status: model.BatchCompleted}
	outcome := &model.UploadOutcome{BatchNumber: 1, Total: 80, Uploaded: 78, Failed: 1, Skipped: 1, Errors: []string{"第 40 行: HTTP 500"}}
	if err := st.SaveBatchOutcome("session-1", batch, outcome); err != nil {
		t.Fatalf("save: %v", err)
	}

	records, err := st.ListBatchRecords("session-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}
	r := records[0]
	if r.BatchNumber != 1 || r.UploadedRows != 78 || r.FailedRows != 1 || r.SkippedRows != 1 {
		t.Fatalf("record: %+v", r)
	}
	if r.Status != string(model.BatchCompleted) || r.ErrorMessage == "" {
		t.Fatalf("record: %+v", r)
	}

	if other, _ := st.ListBatchRecords("session-2"); len(other) != 0 {
		t.Fatalf("unexpected records for other session: %v", other)
	}
}
