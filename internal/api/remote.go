package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consolidator/internal/baserow"
	"consolidator/internal/exporter"
)

// ConnectionResponse 远端连接信息（令牌永不回传）
type ConnectionResponse struct {
	Mode      string `json:"mode"`
	BaseURL   string `json:"baseUrl"`
	TableID   string `json:"tableId"`
	HasToken  bool   `json:"hasToken"`
	Connected bool   `json:"connected"`
	SpeedMode string `json:"speedMode"`
	BatchSize int    `json:"batchSize"`
}

// GetConnection 获取远端连接信息
// GET /api/connection
func (h *Handler) GetConnection(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, ConnectionResponse{
		Mode:      h.mode,
		BaseURL:   h.remoteCfg.BaseURL,
		TableID:   h.remoteCfg.TableID,
		HasToken:  h.remoteCfg.APIToken != "",
		Connected: h.client != nil,
		SpeedMode: string(h.speedMode),
		BatchSize: h.batchSize,
	})
}

// UpdateConnectionRequest 远端连接更新请求，均为可选字段
type UpdateConnectionRequest struct {
	Mode      *string `json:"mode"`
	BaseURL   *string `json:"baseUrl"`
	APIToken  *string `json:"apiToken"`
	TableID   *string `json:"tableId"`
	SpeedMode *string `json:"speedMode"`
	BatchSize *int    `json:"batchSize"`
}

// UpdateConnection 更新远端连接配置，任何连接项变化都会使已有连接失效
// PATCH /api/connection
func (h *Handler) UpdateConnection(c *gin.Context) {
	var req UpdateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	connChanged := false
	if req.Mode != nil && *req.Mode != h.mode {
		if *req.Mode != baserow.ModeExternal && *req.Mode != baserow.ModeEmbedded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知的运行模式: " + *req.Mode})
			return
		}
		h.mode = *req.Mode
		connChanged = true
	}
	if req.BaseURL != nil && *req.BaseURL != h.remoteCfg.BaseURL {
		h.remoteCfg.BaseURL = *req.BaseURL
		connChanged = true
	}
	if req.APIToken != nil && *req.APIToken != h.remoteCfg.APIToken {
		h.remoteCfg.APIToken = *req.APIToken
		connChanged = true
	}
	if req.TableID != nil && *req.TableID != h.remoteCfg.TableID {
		h.remoteCfg.TableID = *req.TableID
		connChanged = true
	}
	if connChanged {
		h.client = nil
		h.schema = nil
	}

	if req.SpeedMode != nil {
		mode := exporter.SpeedMode(*req.SpeedMode)
		switch mode {
		case exporter.ModeTurbo, exporter.ModeBalanced, exporter.ModeConservative:
			h.speedMode = mode
			_ = h.store.SetConfig("speed_mode", *req.SpeedMode)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知的速度档位: " + *req.SpeedMode})
			return
		}
	}
	if req.BatchSize != nil {
		if *req.BatchSize <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "批次大小必须为正数"})
			return
		}
		h.batchSize = *req.BatchSize
		_ = h.store.SetConfigInt("batch_size", *req.BatchSize)
	}

	c.JSON(http.StatusOK, ConnectionResponse{
		Mode:      h.mode,
		BaseURL:   h.remoteCfg.BaseURL,
		TableID:   h.remoteCfg.TableID,
		HasToken:  h.remoteCfg.APIToken != "",
		Connected: h.client != nil,
		SpeedMode: string(h.speedMode),
		BatchSize: h.batchSize,
	})
}

// TestConnection 验证远端连接（嵌入式模式会按需拉起服务）
// POST /api/connection/test
func (h *Handler) TestConnection(c *gin.Context) {
	h.mu.Lock()
	cfg := h.remoteCfg
	mode := h.mode
	h.mu.Unlock()

	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manager, err := baserow.NewManager(mode, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := manager.Connect(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "连接失败: " + err.Error()})
		return
	}

	schema := baserow.NewSchemaManager(client)
	fields, err := schema.Discover(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "字段发现失败: " + err.Error()})
		return
	}

	h.mu.Lock()
	h.client = client
	h.schema = schema
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"connected": true,
		"mode":      manager.Mode(),
		"fields":    fields,
	})
}

// EnsureFields 按主表列补齐远端缺失字段
// POST /api/sessions/:id/fields
func (h *Handler) EnsureFields(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	table, ok := session.Master()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未执行合并"})
		return
	}

	h.mu.Lock()
	schema := h.schema
	h.mu.Unlock()
	if schema == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "远端尚未连接，请先测试连接"})
		return
	}

	created, failed := schema.EnsureFields(c.Request.Context(), table)
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"failed":  failed,
	})
}

// VerifyUpload 核对远端行数与主表行数
// POST /api/sessions/:id/verify
func (h *Handler) VerifyUpload(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	table, ok := session.Master()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未执行合并"})
		return
	}

	h.mu.Lock()
	client := h.client
	h.mu.Unlock()
	if client == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "远端尚未连接，请先测试连接"})
		return
	}

	report, err := exporter.NewVerifier(client).Verify(c.Request.Context(), table.RowCount())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "核对失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ClearRemoteTable 清空远端表（用于重新上传前的复位）
// POST /api/connection/clear
func (h *Handler) ClearRemoteTable(c *gin.Context) {
	h.mu.Lock()
	client := h.client
	h.mu.Unlock()
	if client == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "远端尚未连接，请先测试连接"})
		return
	}

	deleted, err := client.ClearTable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "清空失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
