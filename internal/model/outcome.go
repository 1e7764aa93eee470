package model

import "time"

// UploadOutcome 逐行上传结果的聚合
// 重试耗尽才计入 Failed；整行为空的行计入 Skipped，不视为失败
type UploadOutcome struct {
	BatchNumber int           `json:"batchNumber"`
	Total       int           `json:"total"`
	Uploaded    int           `json:"uploaded"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// SuccessRate 成功率（0-100）
func (o *UploadOutcome) SuccessRate() float64 {
	if o.Total == 0 {
		return 0
	}
	return float64(o.Uploaded) / float64(o.Total) * 100
}

// VerifyReport 上传后行数核对结果
// 仅做计数级校验，无法发现"重复行掩盖缺失行"的情况
type VerifyReport struct {
	Matched  bool `json:"matched"`
	Expected int  `json:"expected"`
	Actual   int  `json:"actual"`
	Missing  int  `json:"missing"`
}

// ColumnStat 单列统计
type ColumnStat struct {
	NonEmpty int `json:"nonEmpty"`
	Empty    int `json:"empty"`
}

// ConsolidationSummary 合并结果汇总
type ConsolidationSummary struct {
	TotalRows    int                   `json:"totalRows"`
	TotalColumns int                   `json:"totalColumns"`
	SourceFiles  int                   `json:"sourceFiles"`
	SourceSheets int                   `json:"sourceSheets"`
	ColumnInfo   map[string]ColumnStat `json:"columnInfo"`
}
