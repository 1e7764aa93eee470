package consolidator

import (
	"fmt"
	"strings"

	"consolidator/internal/model"
)

// SheetError 单张工作表合并失败的记录（跳过该表，不中断整体）
type SheetError struct {
	FileName  string `json:"fileName"`
	SheetName string `json:"sheetName"`
	Message   string `json:"message"`
}

// Consolidate 按冻结后的表头映射合并全部工作表为主表
// 行序 = 工作表到达顺序 + 表内行序，跨表不去重不排序
// 单表变换失败时记录错误并继续其余工作表（宁要部分数据，不要零数据）
func Consolidate(sheets []model.RawSheet, mapping model.HeaderMapping) (*model.MasterTable, []SheetError) {
	table := &model.MasterTable{}
	var errs []SheetError

	for i := range sheets {
		sheet := &sheets[i]
		rows, err := transformSheet(sheet, mapping)
		if err != nil {
			errs = append(errs, SheetError{
				FileName:  sheet.FileName,
				SheetName: sheet.SheetName,
				Message:   err.Error(),
			})
			continue
		}
		table.Rows = append(table.Rows, rows...)
	}

	return table, errs
}

// transformSheet 单表变换：
// 1) 表内重名列按出现顺序追加 _2、_3 后缀（重名是源数据录入错误，不得静默覆盖）
// 2) 按映射重命名，未映射列丢弃
// 3) 对齐到固定口径列序，本表缺失的口径列填空字符串
// 4) 追加溯源列
func transformSheet(sheet *model.RawSheet, mapping model.HeaderMapping) ([]model.MasterRow, error) {
	if len(sheet.Headers) == 0 && sheet.RowCount() > 0 {
		return nil, fmt.Errorf("sheet has %d rows but no header row", sheet.RowCount())
	}

	headers := dedupeHeaders(sheet.Headers)

	// 列下标 -> 口径列下标；-1 表示丢弃
	targets := make([]int, len(headers))
	for i, header := range headers {
		targets[i] = -1
		if target, ok := mapping.Target(header); ok {
			if idx := model.CanonicalIndex(target); idx >= 0 {
				targets[i] = idx
			}
		}
	}

	rows := make([]model.MasterRow, 0, sheet.RowCount())
	for _, raw := range sheet.Rows {
		row := model.NewMasterRow(sheet.FileName, sheet.SheetName)
		for col, target := range targets {
			if target < 0 || col >= len(raw) {
				continue
			}
			// 同一口径列被多个源列命中时，先到的非空值保留
			if row.Values[target] == "" {
				row.Values[target] = strings.TrimSpace(raw[col])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// dedupeHeaders 表内重名列改名：第二次出现记 _2，第三次 _3，依此类推
func dedupeHeaders(headers []string) []string {
	counts := make(map[string]int, len(headers))
	deduped := make([]string, len(headers))
	for i, h := range headers {
		counts[h]++
		if counts[h] == 1 {
			deduped[i] = h
		} else {
			deduped[i] = fmt.Sprintf("%s_%d", h, counts[h])
		}
	}
	return deduped
}

// Summarize 统计合并结果（行列规模、来源数量、逐列非空计数）
func Summarize(table *model.MasterTable) model.ConsolidationSummary {
	summary := model.ConsolidationSummary{
		TotalRows:    table.RowCount(),
		TotalColumns: len(table.Columns()),
		ColumnInfo:   make(map[string]model.ColumnStat, len(model.CanonicalHeaders)),
	}

	files := make(map[string]bool)
	sheets := make(map[string]bool)
	for i := range table.Rows {
		row := &table.Rows[i]
		files[row.SourceFile] = true
		sheets[row.SourceFile+"\x00"+row.SourceSheet] = true
	}
	summary.SourceFiles = len(files)
	summary.SourceSheets = len(sheets)

	for idx, col := range model.CanonicalHeaders {
		stat := model.ColumnStat{}
		for i := range table.Rows {
			if table.Rows[i].Values[idx] != "" {
				stat.NonEmpty++
			} else {
				stat.Empty++
			}
		}
		summary.ColumnInfo[col] = stat
	}
	return summary
}
