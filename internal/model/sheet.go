package model

// RawSheet 单张原始表：表头 + 字符串行 + 溯源信息
// 读取后只读，合并完成即丢弃
type RawSheet struct {
	FileName  string     `json:"fileName"`
	SheetName string     `json:"sheetName"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
}

// RowCount 数据行数（不含表头）
func (s *RawSheet) RowCount() int {
	return len(s.Rows)
}
