package model

// Unmapped 表示该表头未能匹配到任何口径列，合并时对应列将被丢弃
const Unmapped = ""

// HeaderMapping 原始表头 -> 口径列名（或 Unmapped）
// 键是本批次实际观察到的表头，冻结后再进入合并
type HeaderMapping map[string]string

// Target 查询映射目标，第二个返回值表示是否已映射到口径列
func (m HeaderMapping) Target(raw string) (string, bool) {
	target, ok := m[raw]
	if !ok || target == Unmapped {
		return Unmapped, false
	}
	return target, true
}

// MappedCount 已映射到口径列的表头数量
func (m HeaderMapping) MappedCount() int {
	n := 0
	for _, target := range m {
		if target != Unmapped {
			n++
		}
	}
	return n
}

// MappingEntry 单个表头的匹配结果（供前端映射确认界面使用）
type MappingEntry struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Score     int    `json:"score"`
	Mapped    bool   `json:"mapped"`
}

// Suggestion 候选口径列及其相似度分值
type Suggestion struct {
	Canonical string `json:"canonical"`
	Score     int    `json:"score"`
}
