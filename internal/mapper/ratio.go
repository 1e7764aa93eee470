package mapper

import "math"

// Ratio 计算两个字符串的相似度（0-100）
// 与 fuzzywuzzy 的 fuzz.ratio 同口径：基于插入/删除代价 1、替换代价 2 的
// 编辑距离，ratio = (len1+len2-dist)/(len1+len2)*100，四舍五入
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := indelDistance(ra, rb)
	return int(math.Round(float64(total-dist) / float64(total) * 100))
}

// indelDistance 加权编辑距离（替换=2，插入/删除=1），对称
func indelDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub += 2
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			curr[j] = min3(sub, del, ins)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
