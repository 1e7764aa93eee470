package exporter

import "consolidator/internal/model"

// DefaultBatchSize 默认批次大小
const DefaultBatchSize = 80

// Plan 将主表按固定批次大小切分为连续不重叠的批次
// 批次号 1 起始；末批承接余数；各批行数之和恒等于总行数
func Plan(table *model.MasterTable, batchSize int) []*model.Batch {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total := table.RowCount()
	batches := make([]*model.Batch, 0, (total+batchSize-1)/batchSize)

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batches = append(batches, &model.Batch{
			Number:   len(batches) + 1,
			StartRow: start + 1,
			EndRow:   end,
			Rows:     table.Rows[start:end],
			Status:   model.BatchPending,
		})
	}
	return batches
}

// Summarize 汇总批次执行情况
func Summarize(batches []*model.Batch) model.BatchSummary {
	summary := model.BatchSummary{TotalBatches: len(batches)}
	for _, b := range batches {
		summary.TotalRows += b.RowCount()
		switch b.Status {
		case model.BatchCompleted:
			summary.CompletedBatches++
			summary.CompletedRows += b.RowCount()
		case model.BatchFailed:
			summary.FailedBatches++
		case model.BatchPending:
			summary.PendingBatches++
		}
	}
	if summary.TotalRows > 0 {
		summary.CompletionRate = float64(summary.CompletedRows) / float64(summary.TotalRows) * 100
	}
	return summary
}
