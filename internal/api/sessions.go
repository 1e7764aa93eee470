package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consolidator/internal/consolidator"
	"consolidator/internal/ingest"
)

// CreateSession 创建整合会话
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	session := consolidator.NewSession(uuid.New().String())

	// 历史改写落库后跨会话生效
	if overrides, err := h.store.ListOverrides(); err == nil {
		session.LoadOverrides(overrides)
	}

	h.sessions.Put(session)
	c.JSON(http.StatusOK, gin.H{"sessionId": session.ID})
}

// DeleteSession 删除整合会话
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// sessionFrom 从路径参数取会话，不存在则直接写 404
func (h *Handler) sessionFrom(c *gin.Context) (*consolidator.Session, bool) {
	session, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return nil, false
	}
	return session, true
}

// UploadResponse 文件摄取响应
type UploadResponse struct {
	FileCount   int                `json:"fileCount"`
	SheetCount  int                `json:"sheetCount"`
	TotalRows   int                `json:"totalRows"`
	Errors      []ingest.FileError `json:"errors,omitempty"`
	HeaderCount int                `json:"headerCount"`
}

// UploadFiles 上传并摄取数据文件 (xlsx/xls/csv，可多选)
// POST /api/sessions/:id/files
func (h *Handler) UploadFiles(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	// 按原始文件名保存到独立临时目录，来源列才能记录真实文件名
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("consolidator_upload_%d_", time.Now().UnixNano()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建临时目录失败"})
		return
	}
	defer os.RemoveAll(tempDir)

	paths := make([]string, 0, len(files))
	for _, f := range files {
		tempPath := filepath.Join(tempDir, filepath.Base(f.Filename))
		if err := c.SaveUploadedFile(f, tempPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
			return
		}
		paths = append(paths, tempPath)
	}

	result := ingest.ReadFiles(paths)
	session.AddResult(result)

	// 摄取日志落库，失败不影响响应
	for i, f := range files {
		status := "completed"
		errMsg := ""
		for _, fe := range result.Errors {
			if fe.FileName == filepath.Base(paths[i]) {
				status = "failed"
				errMsg = fe.Message
			}
		}
		sheetCount := 0
		rowCount := 0
		for _, sheet := range result.Sheets {
			if sheet.FileName == filepath.Base(paths[i]) {
				sheetCount++
				rowCount += sheet.RowCount()
			}
		}
		_, _ = h.store.CreateImportLog(f.Filename, sheetCount, rowCount, status, errMsg)
	}

	c.JSON(http.StatusOK, UploadResponse{
		FileCount:   result.FileCount,
		SheetCount:  result.SheetCount(),
		TotalRows:   result.TotalRows,
		Errors:      result.Errors,
		HeaderCount: len(session.Headers()),
	})
}

// GetHeaders 获取全部去重表头
// GET /api/sessions/:id/headers
func (h *Handler) GetHeaders(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"headers": session.Headers()})
}
