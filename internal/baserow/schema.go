package baserow

import (
	"context"
	"log"
	"time"

	"consolidator/internal/model"
)

// SchemaManager 远端字段管理：发现现有字段，补建主表缺失字段
// 建字段按发现结果做幂等跳过，运行中不二次核对（并发外部改表不在范围内）
type SchemaManager struct {
	client *Client
	known  map[string]model.FieldType

	// FieldDelay 建字段之间的间隔（测试可置零）
	FieldDelay time.Duration
}

// NewSchemaManager 创建字段管理器
func NewSchemaManager(client *Client) *SchemaManager {
	return &SchemaManager{
		client:     client,
		known:      make(map[string]model.FieldType),
		FieldDelay: 200 * time.Millisecond,
	}
}

// Discover 拉取远端当前字段集
func (m *SchemaManager) Discover(ctx context.Context) ([]model.RemoteField, error) {
	fields, err := m.client.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	m.known = make(map[string]model.FieldType, len(fields))
	for _, f := range fields {
		m.known[f.Name] = f.Type
	}
	return fields, nil
}

// Known 已知字段类型（列名 -> 类型），上传清洗时用于零值选择
func (m *SchemaManager) Known() map[string]model.FieldType {
	snapshot := make(map[string]model.FieldType, len(m.known))
	for k, v := range m.known {
		snapshot[k] = v
	}
	return snapshot
}

// EnsureFields 为远端缺失的主表列逐个建字段，类型按列值推断
// 单个字段创建失败记入 failed 并继续：后续该列数据会在行级被远端拒绝，
// 以行级失败形式浮出，不在此处中断整次上传
func (m *SchemaManager) EnsureFields(ctx context.Context, table *model.MasterTable) (created []model.RemoteField, failed []string) {
	for _, col := range table.Columns() {
		if _, ok := m.known[col]; ok {
			continue
		}

		fieldType := InferFieldType(table.ColumnValues(col))
		if err := m.client.CreateField(ctx, col, fieldType); err != nil {
			log.Printf("create field %q (%s) failed: %v", col, fieldType, err)
			failed = append(failed, col)
			continue
		}

		m.known[col] = fieldType
		created = append(created, model.RemoteField{Name: col, Type: fieldType})

		if m.FieldDelay > 0 {
			time.Sleep(m.FieldDelay)
		}
	}
	return created, failed
}
