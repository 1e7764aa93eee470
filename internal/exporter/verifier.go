package exporter

import (
	"context"

	"consolidator/internal/baserow"
	"consolidator/internal/model"
)

// VerifyPageSize 核对时的分页大小
const VerifyPageSize = 200

// Verifier 上传完成后的行数核对
type Verifier struct {
	client *baserow.Client

	// PageSize 为 0 时使用 VerifyPageSize
	PageSize int
}

// NewVerifier 创建核对器
func NewVerifier(client *baserow.Client) *Verifier {
	return &Verifier{client: client}
}

// Verify 翻页统计远端实际行数并与期望值比对
// 只核对计数，不做内容比对；远端行数多于期望时同样视为匹配
func (v *Verifier) Verify(ctx context.Context, expected int) (*model.VerifyReport, error) {
	size := v.PageSize
	if size <= 0 {
		size = VerifyPageSize
	}

	actual := 0
	for page := 1; ; page++ {
		result, err := v.client.ListRows(ctx, page, size)
		if err != nil {
			return nil, err
		}
		actual += len(result.Results)
		if result.Next == nil {
			break
		}
	}

	report := &model.VerifyReport{
		Expected: expected,
		Actual:   actual,
		Matched:  actual >= expected,
	}
	if actual < expected {
		report.Missing = expected - actual
	}
	return report, nil
}
