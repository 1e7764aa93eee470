package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"consolidator/internal/consolidator"
	"consolidator/internal/exporter"
	"consolidator/internal/model"
)

// PlanBatchesRequest 批次规划请求
type PlanBatchesRequest struct {
	BatchSize int `json:"batchSize"`
}

// PlanBatches 将主表切分为上传批次
// POST /api/sessions/:id/batches
func (h *Handler) PlanBatches(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	var req PlanBatchesRequest
	// 请求体可省略，使用配置的批次大小
	_ = c.ShouldBindJSON(&req)
	if req.BatchSize <= 0 {
		h.mu.Lock()
		req.BatchSize = h.batchSize
		h.mu.Unlock()
	}

	batches, err := session.PlanBatches(req.BatchSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batches": batches,
		"summary": exporter.Summarize(batches),
	})
}

// ListBatches 获取批次列表与汇总
// GET /api/sessions/:id/batches
func (h *Handler) ListBatches(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	batches := session.Batches()
	c.JSON(http.StatusOK, gin.H{
		"batches": batches,
		"summary": exporter.Summarize(batches),
	})
}

// ResetBatch 将失败批次重置为待上传
// POST /api/sessions/:id/batches/:number/reset
func (h *Handler) ResetBatch(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的批次号"})
		return
	}
	if err := session.ResetBatch(number); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": session.BatchSummary()})
}

// batchStreamEvent SSE 上传进度事件
type batchStreamEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// newBatchUploader 基于当前远端连接构建上传器，未连接时返回错误
func (h *Handler) newBatchUploader() (*exporter.Uploader, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client == nil {
		return nil, fmt.Errorf("远端尚未连接，请先测试连接")
	}

	uploader := exporter.NewUploader(h.client, exporter.TuningFor(h.speedMode))
	if h.schema != nil {
		uploader.FieldTypes = h.schema.Known()
	}
	return uploader, nil
}

// ExportBatchStream 上传单个批次 (SSE 进度)
// POST /api/sessions/:id/batches/:number/export
func (h *Handler) ExportBatchStream(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的批次号"})
		return
	}
	batch, ok := session.Batch(number)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "批次不存在"})
		return
	}
	if batch.Status != model.BatchPending {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("批次 %d 状态为 %s，无法上传", number, batch.Status)})
		return
	}

	uploader, err := h.newBatchUploader()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.streamBatches(c, session, uploader, []*model.Batch{batch})
}

// ExportPendingStream 顺序上传全部待上传批次 (SSE 进度)
// POST /api/sessions/:id/batches/export
func (h *Handler) ExportPendingStream(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	var pending []*model.Batch
	for _, b := range session.Batches() {
		if b.Status == model.BatchPending {
			pending = append(pending, b)
		}
	}
	if len(pending) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "没有待上传的批次"})
		return
	}

	uploader, err := h.newBatchUploader()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.streamBatches(c, session, uploader, pending)
}

// streamBatches 逐批上传并以 SSE 推送进度与结果
func (h *Handler) streamBatches(c *gin.Context, session *consolidator.Session, uploader *exporter.Uploader, batches []*model.Batch) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event batchStreamEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(batchStreamEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始上传 %d 个批次", len(batches)),
		Data:      map[string]any{"batchCount": len(batches)},
		Timestamp: time.Now(),
	})

	ctx := c.Request.Context()
	outcomes := make([]*model.UploadOutcome, 0, len(batches))

	for _, batch := range batches {
		lastPercent := -1
		progressFn := func(p exporter.ProgressEvent) {
			if p.Percent == lastPercent {
				return
			}
			lastPercent = p.Percent
			send(batchStreamEvent{
				Type:      "progress",
				Message:   p.Stage,
				Data:      map[string]any{"batch": batch.Number, "percent": p.Percent},
				Timestamp: time.Now(),
			})
		}

		outcome := uploader.UploadBatch(ctx, batch, progressFn)
		outcomes = append(outcomes, outcome)

		// 结果落库，失败不阻断流
		if err := h.store.SaveBatchOutcome(session.ID, batch, outcome); err != nil {
			send(batchStreamEvent{
				Type:      "warning",
				Message:   "批次结果落库失败: " + err.Error(),
				Data:      map[string]any{"batch": batch.Number},
				Timestamp: time.Now(),
			})
		}

		send(batchStreamEvent{
			Type:      "batch_done",
			Message:   fmt.Sprintf("批次 %d: %s", batch.Number, batch.Status),
			Data:      map[string]any{"batch": batch.Number, "status": batch.Status, "outcome": outcome},
			Timestamp: time.Now(),
		})

		if ctx.Err() != nil {
			return
		}
	}

	send(batchStreamEvent{
		Type:    "done",
		Message: "上传结束",
		Data: map[string]any{
			"summary":  session.BatchSummary(),
			"outcomes": outcomes,
		},
		Timestamp: time.Now(),
	})
}
