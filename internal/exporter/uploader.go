package exporter

import (
	"context"
	"fmt"
	"time"

	"consolidator/internal/baserow"
	"consolidator/internal/model"
)

// SpeedMode 上传速度档位，决定限速与重试参数
type SpeedMode string

const (
	ModeTurbo        SpeedMode = "turbo"
	ModeBalanced     SpeedMode = "balanced"
	ModeConservative SpeedMode = "conservative"
)

// Tuning 单个速度档位对应的限速与重试参数
type Tuning struct {
	RowDelay    time.Duration
	BatchDelay  time.Duration
	RetryDelay  time.Duration
	MaxAttempts int
}

// TuningFor 档位到参数的映射，未知档位回落到 balanced
func TuningFor(mode SpeedMode) Tuning {
	switch mode {
	case ModeTurbo:
		return Tuning{RowDelay: 5 * time.Millisecond, BatchDelay: 100 * time.Millisecond, RetryDelay: 0, MaxAttempts: 1}
	case ModeConservative:
		return Tuning{RowDelay: 20 * time.Millisecond, BatchDelay: 500 * time.Millisecond, RetryDelay: time.Second, MaxAttempts: 3}
	default:
		return Tuning{RowDelay: 10 * time.Millisecond, BatchDelay: 300 * time.Millisecond, RetryDelay: 500 * time.Millisecond, MaxAttempts: 2}
	}
}

// 每批结果最多保留的错误条数，避免大批次失败时无限膨胀
const maxBatchErrors = 5

// 批次完成判定线：有效行成功比例不低于 90% 视为完成
const completionRatio = 0.9

// Uploader 将批次逐行写入远端表
// 行与行之间串行执行，顺带限速；失败行重试耗尽后跳过，不阻塞后续行
type Uploader struct {
	client *baserow.Client
	tuning Tuning

	// FieldTypes 远端列类型，用于空值的类型化填充
	FieldTypes map[string]model.FieldType
}

// NewUploader 创建上传器
func NewUploader(client *baserow.Client, tuning Tuning) *Uploader {
	return &Uploader{
		client:     client,
		tuning:     tuning,
		FieldTypes: make(map[string]model.FieldType),
	}
}

// CleanRow 将主表行整理为远端可接受的载荷
// 返回值 hasData 只看规范列的原始取值，类型化零值填充发生在判空之后，
// 否则数字列填 "0" 会让所有行都显得非空
func CleanRow(row *model.MasterRow, fieldTypes map[string]model.FieldType) (payload map[string]string, hasData bool) {
	payload = make(map[string]string, len(model.CanonicalHeaders)+2)

	for _, col := range model.CanonicalHeaders {
		value := row.Get(col)
		if value != "" {
			hasData = true
			payload[col] = value
			continue
		}
		switch fieldTypes[col] {
		case model.FieldNumber:
			payload[col] = "0"
		case model.FieldBoolean:
			payload[col] = "false"
		default:
			payload[col] = ""
		}
	}

	payload[model.ColSourceFile] = row.SourceFile
	payload[model.ColSourceSheet] = row.SourceSheet
	return payload, hasData
}

// UploadBatch 上传一个批次并更新其状态
// 状态流转：exporting -> completed/failed；上下文取消立即终止并判失败
func (u *Uploader) UploadBatch(ctx context.Context, batch *model.Batch, progress func(ProgressEvent)) *model.UploadOutcome {
	started := time.Now()
	batch.Status = model.BatchExporting

	outcome := &model.UploadOutcome{
		BatchNumber: batch.Number,
		Total:       batch.RowCount(),
	}

	reportProgress(progress, 0, fmt.Sprintf("批次 %d 开始上传", batch.Number))

	for i := range batch.Rows {
		if ctx.Err() != nil {
			u.recordError(outcome, fmt.Sprintf("批次 %d 被取消: %v", batch.Number, ctx.Err()))
			batch.Status = model.BatchFailed
			outcome.Duration = time.Since(started)
			return outcome
		}

		payload, hasData := CleanRow(&batch.Rows[i], u.FieldTypes)
		if !hasData {
			outcome.Skipped++
			continue
		}

		if err := u.uploadRow(ctx, payload); err != nil {
			outcome.Failed++
			u.recordError(outcome, fmt.Sprintf("第 %d 行: %v", batch.StartRow+i, err))
		} else {
			outcome.Uploaded++
		}

		reportProgress(progress, (i+1)*100/batch.RowCount(), fmt.Sprintf("批次 %d: %d/%d", batch.Number, i+1, batch.RowCount()))
		time.Sleep(u.tuning.RowDelay)
	}

	attempted := outcome.Total - outcome.Skipped
	if attempted == 0 || float64(outcome.Uploaded) >= completionRatio*float64(attempted) {
		batch.Status = model.BatchCompleted
	} else {
		batch.Status = model.BatchFailed
	}

	outcome.Duration = time.Since(started)
	reportProgress(progress, 100, fmt.Sprintf("批次 %d 结束: 成功 %d 失败 %d 跳过 %d", batch.Number, outcome.Uploaded, outcome.Failed, outcome.Skipped))

	time.Sleep(u.tuning.BatchDelay)
	return outcome
}

// uploadRow 单行写入，固定间隔重试直至次数耗尽
func (u *Uploader) uploadRow(ctx context.Context, payload map[string]string) error {
	var lastErr error
	for attempt := 1; attempt <= u.tuning.MaxAttempts; attempt++ {
		lastErr = u.client.CreateRow(ctx, payload)
		if lastErr == nil {
			return nil
		}
		if attempt < u.tuning.MaxAttempts {
			time.Sleep(u.tuning.RetryDelay)
		}
	}
	return lastErr
}

func (u *Uploader) recordError(outcome *model.UploadOutcome, msg string) {
	if len(outcome.Errors) < maxBatchErrors {
		outcome.Errors = append(outcome.Errors, msg)
	}
}
