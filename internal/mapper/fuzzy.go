package mapper

import (
	"sort"

	"consolidator/internal/model"
)

// MatchThreshold 模糊匹配的接受阈值，低于该分值视为未匹配
const MatchThreshold = 80

// SuggestionLimit 候选建议条数
const SuggestionLimit = 5

// Matcher 表头模糊匹配器：对口径列及其变体打分，取最高
type Matcher struct {
	canonical []string
	normals   map[string]string   // 口径列 -> 规范化形式
	variants  map[string][]string // 口径列 -> 规范化后的变体
}

// NewMatcher 基于固定口径与内置变体目录创建匹配器
func NewMatcher() *Matcher {
	m := &Matcher{
		canonical: model.CanonicalHeaders,
		normals:   make(map[string]string, len(model.CanonicalHeaders)),
		variants:  make(map[string][]string, len(model.CanonicalHeaders)),
	}
	for _, name := range m.canonical {
		m.normals[name] = NormalizeHeader(name)
		raw := variantCatalog[name]
		normalized := make([]string, 0, len(raw))
		for _, v := range raw {
			normalized = append(normalized, NormalizeHeader(v))
		}
		m.variants[name] = normalized
	}
	return m
}

// Match 返回最佳口径列及分值，低于阈值时 ok=false
// 与口径列本身规范化相等直接 100 分短路；同分取目录中先出现者，结果确定
func (m *Matcher) Match(header string) (canonical string, score int, ok bool) {
	normalized := NormalizeHeader(header)

	for _, name := range m.canonical {
		if normalized == m.normals[name] {
			return name, 100, true
		}
	}

	best := ""
	bestScore := 0
	for _, name := range m.canonical {
		for _, variant := range m.variants[name] {
			s := Ratio(normalized, variant)
			if s > bestScore {
				bestScore = s
				best = name
			}
		}
	}

	if best == "" || bestScore < MatchThreshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}

// Suggestions 返回去重后的前 k 个候选（按分值降序，同分按目录顺序）
// 不应用接受阈值，供人工覆盖界面展示
func (m *Matcher) Suggestions(header string, k int) []model.Suggestion {
	if k <= 0 {
		k = SuggestionLimit
	}
	normalized := NormalizeHeader(header)

	suggestions := make([]model.Suggestion, 0, len(m.canonical))
	for _, name := range m.canonical {
		best := Ratio(normalized, m.normals[name])
		for _, variant := range m.variants[name] {
			if s := Ratio(normalized, variant); s > best {
				best = s
			}
		}
		suggestions = append(suggestions, model.Suggestion{Canonical: name, Score: best})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > k {
		suggestions = suggestions[:k]
	}
	return suggestions
}
