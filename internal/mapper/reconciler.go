package mapper

import (
	"sort"

	"consolidator/internal/model"
)

// Reconciler 表头调和器：模糊匹配给出默认映射，人工覆盖规则优先
// 覆盖规则以规范化表头为键，进程生命周期内有效，后写覆盖先写
type Reconciler struct {
	matcher   *Matcher
	overrides map[string]string
}

// NewReconciler 创建调和器
func NewReconciler() *Reconciler {
	return &Reconciler{
		matcher:   NewMatcher(),
		overrides: make(map[string]string),
	}
}

// Override 记录精确覆盖规则，对该原始表头此后的调和全部生效
func (r *Reconciler) Override(raw, canonical string) {
	r.overrides[NormalizeHeader(raw)] = canonical
}

// Overrides 当前覆盖规则快照（规范化表头 -> 目标列）
func (r *Reconciler) Overrides() map[string]string {
	snapshot := make(map[string]string, len(r.overrides))
	for k, v := range r.overrides {
		snapshot[k] = v
	}
	return snapshot
}

// SetOverrides 批量装载覆盖规则（用于从持久层恢复）
func (r *Reconciler) SetOverrides(overrides map[string]string) {
	for raw, canonical := range overrides {
		r.overrides[NormalizeHeader(raw)] = canonical
	}
}

// Resolve 调和单个表头：覆盖规则 > 模糊匹配 > 未映射
func (r *Reconciler) Resolve(header string) model.MappingEntry {
	if target, ok := r.overrides[NormalizeHeader(header)]; ok {
		return model.MappingEntry{Raw: header, Canonical: target, Score: 100, Mapped: target != model.Unmapped}
	}

	canonical, score, ok := r.matcher.Match(header)
	if !ok {
		return model.MappingEntry{Raw: header, Canonical: model.Unmapped, Score: score, Mapped: false}
	}
	return model.MappingEntry{Raw: header, Canonical: canonical, Score: score, Mapped: true}
}

// Reconcile 对全体观察到的表头（跨 sheet 汇总去重）逐一调和
// 永不失败：未匹配的表头映射到 Unmapped，由下游在合并时丢弃
func (r *Reconciler) Reconcile(headers []string) model.HeaderMapping {
	mapping := make(model.HeaderMapping, len(headers))
	for _, header := range headers {
		mapping[header] = r.Resolve(header).Canonical
	}
	return mapping
}

// Entries 按表头字典序返回逐项匹配明细（供映射确认界面）
func (r *Reconciler) Entries(headers []string) []model.MappingEntry {
	sorted := make([]string, len(headers))
	copy(sorted, headers)
	sort.Strings(sorted)

	entries := make([]model.MappingEntry, 0, len(sorted))
	for _, header := range sorted {
		entries = append(entries, r.Resolve(header))
	}
	return entries
}

// Suggestions 对单个表头给出前 k 个候选口径列
func (r *Reconciler) Suggestions(header string, k int) []model.Suggestion {
	return r.matcher.Suggestions(header, k)
}
