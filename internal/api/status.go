package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consolidator/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Connected  bool              `json:"connected"`  // 远端是否已验证连接
	RemoteMode string            `json:"remoteMode"` // external / embedded
	SpeedMode  string            `json:"speedMode"`
	BatchSize  int               `json:"batchSize"`
	RecentLogs []store.ImportLog `json:"recentLogs"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	logs, err := h.store.ListImportLogs(10)
	if err != nil {
		logs = nil
	}

	h.mu.Lock()
	connected := h.client != nil
	mode := h.mode
	speedMode := string(h.speedMode)
	batchSize := h.batchSize
	h.mu.Unlock()

	c.JSON(http.StatusOK, StatusResponse{
		Connected:  connected,
		RemoteMode: mode,
		SpeedMode:  speedMode,
		BatchSize:  batchSize,
		RecentLogs: logs,
	})
}
