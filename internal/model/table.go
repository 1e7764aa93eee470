package model

// MasterRow 主表单行：按口径列顺序的定宽值 + 溯源对
// 缺失值一律为空字符串，不存在 null
type MasterRow struct {
	Values      []string `json:"values"`
	SourceFile  string   `json:"sourceFile"`
	SourceSheet string   `json:"sourceSheet"`
}

// NewMasterRow 创建空主表行（所有口径列为空字符串）
func NewMasterRow(sourceFile, sourceSheet string) MasterRow {
	return MasterRow{
		Values:      make([]string, len(CanonicalHeaders)),
		SourceFile:  sourceFile,
		SourceSheet: sourceSheet,
	}
}

// Get 按口径列名取值，未知列返回空字符串
func (r *MasterRow) Get(column string) string {
	switch column {
	case ColSourceFile:
		return r.SourceFile
	case ColSourceSheet:
		return r.SourceSheet
	}
	idx := CanonicalIndex(column)
	if idx < 0 {
		return ""
	}
	return r.Values[idx]
}

// IsEmpty 所有口径列均为空（溯源列不参与判断）
func (r *MasterRow) IsEmpty() bool {
	for _, v := range r.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// MasterTable 合并产物：固定列集 + 任意行数
type MasterTable struct {
	Rows []MasterRow `json:"rows"`
}

// Columns 固定列集（口径列 + 溯源列）
func (t *MasterTable) Columns() []string {
	return MasterColumns()
}

// RowCount 总行数
func (t *MasterTable) RowCount() int {
	return len(t.Rows)
}

// ColumnValues 取某一列的全部值（用于字段类型推断）
func (t *MasterTable) ColumnValues(column string) []string {
	values := make([]string, 0, len(t.Rows))
	for i := range t.Rows {
		values = append(values, t.Rows[i].Get(column))
	}
	return values
}
