package mapper

import "strings"

// NormalizeHeader 规范化表头：小写后，[a-z0-9] 以外的字符一律替换为下划线
// 纯函数，永不失败，幂等
func NormalizeHeader(header string) string {
	lower := strings.ToLower(strings.TrimSpace(header))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
