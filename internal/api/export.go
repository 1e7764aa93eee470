package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"consolidator/internal/ingest"
)

// Consolidate 按当前映射合并为主表
// POST /api/sessions/:id/consolidate
func (h *Handler) Consolidate(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	_, summary, err := session.Consolidate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"sheetErrors": session.SheetErrors(),
	})
}

// GetSummary 获取主表汇总
// GET /api/sessions/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	table, ok := session.Master()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未执行合并"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":    table.RowCount(),
		"columns": len(table.Columns()),
	})
}

// PreviewMaster 预览主表前若干行
// GET /api/sessions/:id/preview?limit=20
func (h *Handler) PreviewMaster(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	table, ok := session.Master()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未执行合并"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > table.RowCount() {
		limit = table.RowCount()
	}

	columns := table.Columns()
	rows := make([]map[string]string, 0, limit)
	for i := 0; i < limit; i++ {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			row[col] = table.Rows[i].Get(col)
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
		"rows":    rows,
		"total":   table.RowCount(),
	})
}

// ExportMaster 下载主表文件
// GET /api/sessions/:id/export?format=xlsx|csv
func (h *Handler) ExportMaster(c *gin.Context) {
	session, ok := h.sessionFrom(c)
	if !ok {
		return
	}

	table, ok := session.Master()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未执行合并"})
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	stamp := time.Now().Format("20060102_150405")

	switch format {
	case "xlsx":
		data, err := ingest.WriteXLSX(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 Excel 失败"})
			return
		}
		filename := fmt.Sprintf("master_consolidated_%s.xlsx", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := ingest.WriteCSV(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 CSV 失败"})
			return
		}
		filename := fmt.Sprintf("master_consolidated_%s.csv", stamp)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的导出格式: " + format})
	}
}
