package baserow

import (
	"strconv"
	"strings"
	"time"

	"consolidator/internal/model"
)

// 布尔列的取值集合
var booleanValues = map[string]bool{
	"true": true, "false": true, "0": true, "1": true, "yes": true, "no": true,
}

// 日期识别尝试的格式
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// 日期采样条数与通过比例
const (
	dateSampleSize = 10
	dateThreshold  = 0.7
)

// InferFieldType 按列值推断远端字段类型（纯函数，永不失败）
// 判定顺序：全部可解析为数字 -> number；取值集合落在布尔集合内 -> boolean；
// 采样 10 个值中 ≥70% 可解析为日期 -> date；否则 text
// 这是尽力而为的启发式，误判最多退化为 text 行为
func InferFieldType(values []string) model.FieldType {
	nonEmpty := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	if len(nonEmpty) == 0 {
		return model.FieldText
	}

	allNumeric := true
	for _, v := range nonEmpty {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		return model.FieldNumber
	}

	allBoolean := true
	for _, v := range nonEmpty {
		if !booleanValues[strings.ToLower(v)] {
			allBoolean = false
			break
		}
	}
	if allBoolean {
		return model.FieldBoolean
	}

	sample := nonEmpty
	if len(sample) > dateSampleSize {
		sample = sample[:dateSampleSize]
	}
	dateCount := 0
	for _, v := range sample {
		if parsesAsDate(v) {
			dateCount++
		}
	}
	if float64(dateCount) >= float64(len(sample))*dateThreshold {
		return model.FieldDate
	}

	return model.FieldText
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
