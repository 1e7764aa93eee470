package exporter

import (
	"fmt"
	"testing"

	"consolidator/internal/model"
)

func tableWithRows(n int) *model.MasterTable {
	rows := make([]model.MasterRow, 0, n)
	for i := 0; i < n; i++ {
		row := model.NewMasterRow("data.xlsx", "Sheet1")
		row.Values[model.CanonicalIndex("email")] = fmt.Sprintf("user%d@example.com", i)
		rows = append(rows, row)
	}
	return &model.MasterTable{Rows: rows}
}

func TestPlan_SplitsWithRemainder(t *testing.T) {
	t.Parallel()

	batches := Plan(tableWithRows(185), 80)
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}

	wantSizes := []int{80, 80, 25}
	for i, b := range batches {
		if b.Number != i+1 {
			t.Errorf("batch[%d].Number = %d", i, b.Number)
		}
		if b.RowCount() != wantSizes[i] {
			t.Errorf("batch[%d] rows = %d, want %d", i, b.RowCount(), wantSizes[i])
		}
		if b.Status != model.BatchPending {
			t.Errorf("batch[%d] status = %s", i, b.Status)
		}
	}

	if batches[0].StartRow != 1 || batches[0].EndRow != 80 {
		t.Errorf("batch 1 range [%d,%d]", batches[0].StartRow, batches[0].EndRow)
	}
	if batches[2].StartRow != 161 || batches[2].EndRow != 185 {
		t.Errorf("batch 3 range [%d,%d]", batches[2].StartRow, batches[2].EndRow)
	}
}

func TestPlan_ExactMultipleAndSmallTable(t *testing.T) {
	t.Parallel()

	if got := len(Plan(tableWithRows(160), 80)); got != 2 {
		t.Fatalf("160/80 batches = %d, want 2", got)
	}
	one := Plan(tableWithRows(5), 80)
	if len(one) != 1 || one[0].RowCount() != 5 {
		t.Fatalf("small table: %+v", one)
	}
	if got := len(Plan(tableWithRows(0), 80)); got != 0 {
		t.Fatalf("empty table batches = %d, want 0", got)
	}
}

func TestPlan_CoversEveryRowExactlyOnce(t *testing.T) {
	t.Parallel()

	for _, total := range []int{1, 79, 80, 81, 240, 317} {
		batches := Plan(tableWithRows(total), 80)

		sum := 0
		prevEnd := 0
		for _, b := range batches {
			if b.StartRow != prevEnd+1 {
				t.Fatalf("total=%d: batch %d starts at %d after end %d", total, b.Number, b.StartRow, prevEnd)
			}
			prevEnd = b.EndRow
			sum += b.RowCount()
		}
		if sum != total {
			t.Fatalf("total=%d: batch rows sum to %d", total, sum)
		}
		if prevEnd != total {
			t.Fatalf("total=%d: last batch ends at %d", total, prevEnd)
		}
	}
}

func TestPlan_InvalidSizeFallsBackToDefault(t *testing.T) {
	t.Parallel()

	batches := Plan(tableWithRows(100), 0)
	if len(batches) != 2 || batches[0].RowCount() != DefaultBatchSize {
		t.Fatalf("batches: %d, first size %d", len(batches), batches[0].RowCount())
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	batches := Plan(tableWithRows(185), 80)
	batches[0].Status = model.BatchCompleted
	batches[1].Status = model.BatchFailed

	s := Summarize(batches)
	if s.TotalBatches != 3 || s.CompletedBatches != 1 || s.FailedBatches != 1 || s.PendingBatches != 1 {
		t.Fatalf("summary: %+v", s)
	}
	if s.TotalRows != 185 || s.CompletedRows != 80 {
		t.Fatalf("rows: %+v", s)
	}
	want := float64(80) / 185 * 100
	if s.CompletionRate != want {
		t.Fatalf("rate = %v, want %v", s.CompletionRate, want)
	}
}
