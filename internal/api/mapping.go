package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"consolidator/internal/mapper"
	"consolidator/internal/model"
)

// GetMapping 获取全部表头的映射明细
// GET /api/sessions/:id/mapping
func (h *Handler) GetMapping(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	entries := session.Entries()
	mapped := 0
	for _, e := range entries {
		if e.Mapped {
			mapped++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":  entries,
		"mapped":   mapped,
		"unmapped": len(entries) - mapped,
	})
}

// ApplyMappingRequest 确认映射请求
type ApplyMappingRequest struct {
	Mapping map[string]string `json:"mapping"` // 原始表头 -> 目标列（空串表示丢弃）
	Persist bool              `json:"persist"` // 是否将改写落库，跨会话生效
}

// ApplyMapping 确认映射（人工调整后的整表提交）
// POST /api/sessions/:id/mapping
func (h *Handler) ApplyMapping(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	var req ApplyMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	for _, target := range req.Mapping {
		if target != model.Unmapped && !model.IsCanonical(target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "目标列不在标准列之内: " + target})
			return
		}
	}

	session.ApplyMapping(model.HeaderMapping(req.Mapping))

	if req.Persist {
		if err := h.store.ReplaceOverrides(session.Overrides()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存映射改写失败"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"entries": session.Entries()})
}

// OverrideRequest 单条映射改写请求
type OverrideRequest struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Persist   bool   `json:"persist"`
}

// OverrideMapping 单条人工改写，优先级高于模糊匹配
// POST /api/sessions/:id/mapping/override
func (h *Handler) OverrideMapping(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}
	if req.Canonical != model.Unmapped && !model.IsCanonical(req.Canonical) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "目标列不在标准列之内: " + req.Canonical})
		return
	}

	session.Override(req.Raw, req.Canonical)

	if req.Persist {
		if err := h.store.SaveOverride(mapper.NormalizeHeader(req.Raw), req.Canonical); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存映射改写失败"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"entries": session.Entries()})
}

// GetSuggestions 获取单个表头的候选目标列
// GET /api/sessions/:id/mapping/suggestions?header=...&limit=5
func (h *Handler) GetSuggestions(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	header := c.Query("header")
	if header == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 header 参数"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(mapper.SuggestionLimit)))
	if err != nil || limit <= 0 {
		limit = mapper.SuggestionLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"header":      header,
		"suggestions": session.Suggestions(header, limit),
	})
}
