package baserow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"consolidator/internal/model"
)

// 诊断用响应体截断长度
const errorBodyLimit = 200

// 请求超时：发现类接口短超时，写入类接口长超时
const (
	discoverTimeout = 10 * time.Second
	mutateTimeout   = 30 * time.Second
)

// Client 远端表 REST 客户端（Token 认证，JSON 报文）
type Client struct {
	baseURL string
	token   string
	tableID string
	http    *http.Client
}

// NewClient 创建客户端，BaseURL 末尾斜杠被剔除
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.APIToken,
		tableID: cfg.TableID,
		http:    &http.Client{},
	}
}

// TableID 当前目标表
func (c *Client) TableID() string {
	return c.tableID
}

// Connect 以字段发现作为认证握手，失败视为整次导出操作的硬失败
func (c *Client) Connect(ctx context.Context) error {
	if _, err := c.ListFields(ctx); err != nil {
		return fmt.Errorf("connect table %s: %w", c.tableID, err)
	}
	return nil
}

// ListFields 字段发现
// GET /api/database/fields/table/{table_id}/
func (c *Client) ListFields(ctx context.Context) ([]model.RemoteField, error) {
	url := fmt.Sprintf("%s/api/database/fields/table/%s/", c.baseURL, c.tableID)

	var payload []fieldPayload
	if err := c.do(ctx, http.MethodGet, url, nil, discoverTimeout, &payload); err != nil {
		return nil, err
	}

	fields := make([]model.RemoteField, 0, len(payload))
	for _, p := range payload {
		fields = append(fields, p.toModel())
	}
	return fields, nil
}

// CreateField 创建单个字段
// POST /api/database/fields/table/{table_id}/
func (c *Client) CreateField(ctx context.Context, name string, fieldType model.FieldType) error {
	url := fmt.Sprintf("%s/api/database/fields/table/%s/", c.baseURL, c.tableID)
	body := fieldPayload{Name: name, Type: string(fieldType)}
	return c.do(ctx, http.MethodPost, url, body, mutateTimeout, nil)
}

// CreateRow 创建单行，键为用户可见字段名
// POST /api/database/rows/table/{table_id}/?user_field_names=true
func (c *Client) CreateRow(ctx context.Context, row map[string]string) error {
	url := fmt.Sprintf("%s/api/database/rows/table/%s/?user_field_names=true", c.baseURL, c.tableID)
	return c.do(ctx, http.MethodPost, url, row, mutateTimeout, nil)
}

// ListRows 分页行列表
// GET /api/database/rows/table/{table_id}/?page={n}&size={s}
func (c *Client) ListRows(ctx context.Context, page, size int) (*RowPage, error) {
	url := fmt.Sprintf("%s/api/database/rows/table/%s/?page=%d&size=%d", c.baseURL, c.tableID, page, size)

	var result RowPage
	if err := c.do(ctx, http.MethodGet, url, nil, mutateTimeout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteRow 删除单行（仅用于显式清表，不属于正常同步路径）
// DELETE /api/database/rows/table/{table_id}/{row_id}/
func (c *Client) DeleteRow(ctx context.Context, rowID int64) error {
	url := fmt.Sprintf("%s/api/database/rows/table/%s/%d/", c.baseURL, c.tableID, rowID)
	return c.do(ctx, http.MethodDelete, url, nil, mutateTimeout, nil)
}

// ClearTable 逐页拉取并逐行删除，返回删除行数
// 每删完一页暂停片刻，避免压垮远端
func (c *Client) ClearTable(ctx context.Context) (int, error) {
	deleted := 0
	for {
		page, err := c.ListRows(ctx, 1, 200)
		if err != nil {
			return deleted, err
		}
		if len(page.Results) == 0 {
			return deleted, nil
		}

		for _, row := range page.Results {
			id, ok := rowID(row)
			if !ok {
				continue
			}
			if err := c.DeleteRow(ctx, id); err != nil {
				return deleted, err
			}
			deleted++
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// rowID 取行对象的 id 字段（JSON 数值解码为 float64）
func rowID(row map[string]interface{}) (int64, bool) {
	v, ok := row["id"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// do 发送单个请求并解码响应；非 2xx 返回 *APIError
func (c *Client) do(ctx context.Context, method, url string, body interface{}, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
