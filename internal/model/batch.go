package model

// BatchStatus 批次状态
type BatchStatus string

const (
	BatchPending   BatchStatus = "pending"
	BatchExporting BatchStatus = "exporting"
	BatchCompleted BatchStatus = "completed"
	BatchFailed    BatchStatus = "failed"
)

// Batch 主表的连续切片，作为一次上传工作单元
// 行号为 1 起始闭区间；批次之间互不阻塞，失败批次可单独重试
type Batch struct {
	Number   int         `json:"number"`
	StartRow int         `json:"startRow"`
	EndRow   int         `json:"endRow"`
	Rows     []MasterRow `json:"-"`
	Status   BatchStatus `json:"status"`
}

// RowCount 批次行数
func (b *Batch) RowCount() int {
	return len(b.Rows)
}

// BatchSummary 所有批次的汇总（供进度界面展示）
type BatchSummary struct {
	TotalBatches     int     `json:"totalBatches"`
	CompletedBatches int     `json:"completedBatches"`
	PendingBatches   int     `json:"pendingBatches"`
	FailedBatches    int     `json:"failedBatches"`
	TotalRows        int     `json:"totalRows"`
	CompletedRows    int     `json:"completedRows"`
	CompletionRate   float64 `json:"completionRate"`
}
