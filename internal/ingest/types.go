package ingest

import (
	"time"

	"consolidator/internal/model"
)

// FileError 单个文件/工作表级别的读取失败
// 读取失败只影响自身，其余文件继续处理
type FileError struct {
	FileName  string `json:"fileName"`
	SheetName string `json:"sheetName,omitempty"`
	Message   string `json:"message"`
}

// Result 多文件读取结果
type Result struct {
	Sheets    []model.RawSheet `json:"sheets"`
	Errors    []FileError      `json:"errors,omitempty"`
	FileCount int              `json:"fileCount"`
	TotalRows int              `json:"totalRows"`
	Duration  time.Duration    `json:"duration"`
}

// SheetCount 读取成功的工作表数量
func (r *Result) SheetCount() int {
	return len(r.Sheets)
}
