package consolidator

import (
	"fmt"
	"sync"
	"time"

	"consolidator/internal/exporter"
	"consolidator/internal/ingest"
	"consolidator/internal/mapper"
	"consolidator/internal/model"
)

// Session 一次合并管线的全部可变状态
// 由表现层显式创建并传入，核心不持有任何进程级单例
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	sheets       []model.RawSheet
	ingestErrors []ingest.FileError
	reconciler   *mapper.Reconciler
	mapping      model.HeaderMapping
	master       *model.MasterTable
	sheetErrors  []SheetError
	batches      []*model.Batch
}

// NewSession 创建会话
func NewSession(id string) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		reconciler: mapper.NewReconciler(),
	}
}

// LoadOverrides 从持久层恢复历史覆盖规则
func (s *Session) LoadOverrides(overrides map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconciler.SetOverrides(overrides)
}

// AddResult 追加一次文件读取结果（工作表按到达顺序累积）
func (s *Session) AddResult(result *ingest.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets = append(s.sheets, result.Sheets...)
	s.ingestErrors = append(s.ingestErrors, result.Errors...)
	// 源数据变化后映射与合并产物全部失效
	s.mapping = nil
	s.master = nil
	s.batches = nil
}

// SheetCount 已读入的工作表数量
func (s *Session) SheetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sheets)
}

// IngestErrors 读取阶段被跳过的文件
func (s *Session) IngestErrors() []ingest.FileError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ingest.FileError(nil), s.ingestErrors...)
}

// Headers 全体工作表汇总去重后的原始表头
func (s *Session) Headers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ingest.AllHeaders(s.sheets)
}

// Entries 当前表头的逐项匹配明细（默认 + 覆盖）
func (s *Session) Entries() []model.MappingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.Entries(ingest.AllHeaders(s.sheets))
}

// Suggestions 单个表头的候选口径列
func (s *Session) Suggestions(header string, k int) []model.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.Suggestions(header, k)
}

// Override 登记人工覆盖规则
func (s *Session) Override(raw, canonical string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconciler.Override(raw, canonical)
	s.mapping = nil
}

// Overrides 覆盖规则快照（供持久层保存）
func (s *Session) Overrides() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.Overrides()
}

// ApplyMapping 以用户确认后的完整映射为准：与原始表头不同的条目记为覆盖规则
// 随后冻结映射，供合并使用
func (s *Session) ApplyMapping(mapping model.HeaderMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for raw, target := range mapping {
		if target != raw {
			s.reconciler.Override(raw, target)
		}
	}
	s.mapping = s.reconciler.Reconcile(ingest.AllHeaders(s.sheets))
}

// Mapping 当前映射（未显式确认时按需调和一次）
func (s *Session) Mapping() model.HeaderMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mappingLocked()
}

func (s *Session) mappingLocked() model.HeaderMapping {
	if s.mapping == nil {
		s.mapping = s.reconciler.Reconcile(ingest.AllHeaders(s.sheets))
	}
	return s.mapping
}

// Consolidate 执行合并，返回主表与汇总统计
// 无源数据时报错；单表失败被吸收进 SheetErrors
func (s *Session) Consolidate() (*model.MasterTable, model.ConsolidationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sheets) == 0 {
		return nil, model.ConsolidationSummary{}, fmt.Errorf("no data processed")
	}

	table, errs := Consolidate(s.sheets, s.mappingLocked())
	s.master = table
	s.sheetErrors = errs
	s.batches = nil
	return table, Summarize(table), nil
}

// Master 合并产物（未合并时 ok=false）
func (s *Session) Master() (*model.MasterTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.master == nil {
		return nil, false
	}
	return s.master, true
}

// SheetErrors 合并阶段被跳过的工作表
func (s *Session) SheetErrors() []SheetError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SheetError(nil), s.sheetErrors...)
}

// PlanBatches 对主表切批（须先合并）
func (s *Session) PlanBatches(batchSize int) ([]*model.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.master == nil {
		return nil, fmt.Errorf("consolidate before planning batches")
	}
	s.batches = exporter.Plan(s.master, batchSize)
	return s.batches, nil
}

// Batches 已规划的批次
func (s *Session) Batches() []*model.Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches
}

// Batch 按批次号取批次
func (s *Session) Batch(number int) (*model.Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.batches {
		if b.Number == number {
			return b, true
		}
	}
	return nil, false
}

// BatchSummary 批次执行汇总
func (s *Session) BatchSummary() model.BatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return exporter.Summarize(s.batches)
}

// ResetBatch 失败批次重置回待上传（仅允许 failed -> pending，由用户显式触发）
func (s *Session) ResetBatch(number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.batches {
		if b.Number == number {
			if b.Status != model.BatchFailed {
				return fmt.Errorf("batch %d is %s, only failed batches can be reset", number, b.Status)
			}
			b.Status = model.BatchPending
			return nil
		}
	}
	return fmt.Errorf("batch %d not found", number)
}

// Registry 会话注册表（表现层按 ID 查找）
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Put 登记会话
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get 按 ID 查找会话
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete 移除会话
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
