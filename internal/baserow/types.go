package baserow

import (
	"fmt"

	"consolidator/internal/model"
)

// Config 远端连接配置，由配置层整体传入，核心不提示也不持久化
type Config struct {
	BaseURL  string `json:"baseUrl"`
	APIToken string `json:"-"`
	TableID  string `json:"tableId"`
}

// Validate 连接配置缺项属于不可恢复错误，直接拒绝
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("baserow base url is empty")
	}
	if c.APIToken == "" {
		return fmt.Errorf("baserow api token is empty")
	}
	if c.TableID == "" {
		return fmt.Errorf("baserow table id is empty")
	}
	return nil
}

// APIError 非 2xx 响应：状态码 + 截断后的响应体作为诊断信息
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("baserow api: HTTP %d: %s", e.Status, e.Body)
}

// fieldPayload 字段发现/创建接口的线上形态
type fieldPayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (p fieldPayload) toModel() model.RemoteField {
	return model.RemoteField{Name: p.Name, Type: model.FieldType(p.Type)}
}

// RowPage 行列表接口的单页结果
type RowPage struct {
	Count   int                      `json:"count"`
	Next    *string                  `json:"next"`
	Results []map[string]interface{} `json:"results"`
}
