package consolidator

import (
	"path/filepath"
	"testing"

	"consolidator/internal/ingest"
	"consolidator/internal/mapper"
	"consolidator/internal/model"
)

// 导出主表再读回：每个表头都应精确调和到自身（100 分）
func TestRoundTrip_ExportThenReingest(t *testing.T) {
	t.Parallel()

	sheets := threeSourceSheets()
	r := mapper.NewReconciler()
	mapping := r.Reconcile([]string{"First Name", "Email", "fname", "E-mail", "Name", "email_address"})
	table, _ := Consolidate(sheets, mapping)

	wb, err := ingest.NewWorkbook(table)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	path := filepath.Join(t.TempDir(), "master.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	wb.Close()

	reread, err := ingest.ReadFile(path)
	if err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	if len(reread) != 1 {
		t.Fatalf("sheets: %d", len(reread))
	}
	sheet := reread[0]
	if sheet.RowCount() != table.RowCount() {
		t.Fatalf("rows: want=%d got=%d", table.RowCount(), sheet.RowCount())
	}

	fresh := mapper.NewReconciler()
	for _, header := range sheet.Headers {
		if header == model.ColSourceFile || header == model.ColSourceSheet {
			continue
		}
		entry := fresh.Resolve(header)
		if !entry.Mapped || entry.Canonical != header || entry.Score != 100 {
			t.Fatalf("%q: %+v", header, entry)
		}
	}
}
