package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"consolidator/internal/baserow"
	"consolidator/internal/config"
	"consolidator/internal/consolidator"
	"consolidator/internal/exporter"
	"consolidator/internal/store"
)

// Handler API 处理器
type Handler struct {
	store    *store.Store
	sessions *consolidator.Registry

	// 远端连接状态，PATCH /connection 后整体重建
	mu        sync.Mutex
	remoteCfg baserow.Config
	mode      string
	client    *baserow.Client
	schema    *baserow.SchemaManager

	speedMode exporter.SpeedMode
	batchSize int
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:    st,
		sessions: consolidator.NewRegistry(),
		remoteCfg: baserow.Config{
			BaseURL:  cfg.Baserow.BaseURL,
			APIToken: cfg.Baserow.APIToken,
			TableID:  cfg.Baserow.TableID,
		},
		mode:      cfg.Baserow.Mode,
		speedMode: exporter.SpeedMode(cfg.Sync.SpeedMode),
		batchSize: cfg.Sync.BatchSize,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 会话生命周期
	router.POST("/sessions", h.CreateSession)
	router.DELETE("/sessions/:id", h.DeleteSession)

	// 文件摄取
	router.POST("/sessions/:id/files", h.UploadFiles)
	router.GET("/sessions/:id/headers", h.GetHeaders)

	// 表头映射
	router.GET("/sessions/:id/mapping", h.GetMapping)
	router.POST("/sessions/:id/mapping", h.ApplyMapping)
	router.POST("/sessions/:id/mapping/override", h.OverrideMapping)
	router.GET("/sessions/:id/mapping/suggestions", h.GetSuggestions)

	// 合并
	router.POST("/sessions/:id/consolidate", h.Consolidate)
	router.GET("/sessions/:id/summary", h.GetSummary)
	router.GET("/sessions/:id/preview", h.PreviewMaster)
	router.GET("/sessions/:id/export", h.ExportMaster)

	// 批次上传
	router.POST("/sessions/:id/batches", h.PlanBatches)
	router.GET("/sessions/:id/batches", h.ListBatches)
	router.POST("/sessions/:id/batches/:number/reset", h.ResetBatch)
	router.POST("/sessions/:id/batches/:number/export", h.ExportBatchStream)
	router.POST("/sessions/:id/batches/export", h.ExportPendingStream)
	router.POST("/sessions/:id/fields", h.EnsureFields)
	router.POST("/sessions/:id/verify", h.VerifyUpload)

	// 远端连接
	router.GET("/connection", h.GetConnection)
	router.PATCH("/connection", h.UpdateConnection)
	router.POST("/connection/test", h.TestConnection)
	router.POST("/connection/clear", h.ClearRemoteTable)
}
