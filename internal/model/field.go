package model

// FieldType 远端字段类型（封闭枚举，由纯分类函数产出）
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
)

// RemoteField 远端表中存在的字段（发现接口返回 / 创建接口写入）
type RemoteField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}
