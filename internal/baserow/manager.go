package baserow

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// 部署模式
const (
	ModeExternal = "external"
	ModeEmbedded = "embedded"
)

// Manager 远端实例管理入口
// 外部实例与内嵌实例实现同一接口，启动时按配置选定一次，不在调用点分叉
type Manager interface {
	Mode() string
	Ping(ctx context.Context) bool
	Connect(ctx context.Context) (*Client, error)
}

// NewManager 按模式创建管理器
func NewManager(mode string, cfg Config) (Manager, error) {
	switch mode {
	case ModeEmbedded:
		return NewEmbeddedManager(cfg), nil
	case ModeExternal, "":
		return NewExternalManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown baserow mode: %s", mode)
	}
}

// ExternalManager 连接任意可达的远端实例（云部署模式）
type ExternalManager struct {
	cfg Config
}

// NewExternalManager 创建外部实例管理器
func NewExternalManager(cfg Config) *ExternalManager {
	return &ExternalManager{cfg: cfg}
}

func (m *ExternalManager) Mode() string { return ModeExternal }

// Ping 探测实例是否可达
func (m *ExternalManager) Ping(ctx context.Context) bool {
	return pingAPI(ctx, m.cfg.BaseURL)
}

// Connect 校验配置并完成认证握手
func (m *ExternalManager) Connect(ctx context.Context) (*Client, error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	client := NewClient(m.cfg)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// EmbeddedManager 管理随工具启动的本机实例
// 实例不可达且本机有 docker 时尽力 docker-compose 拉起，失败不阻塞
type EmbeddedManager struct {
	cfg Config
}

// NewEmbeddedManager 创建内嵌实例管理器
func NewEmbeddedManager(cfg Config) *EmbeddedManager {
	return &EmbeddedManager{cfg: cfg}
}

func (m *EmbeddedManager) Mode() string { return ModeEmbedded }

// Ping 探测本机实例
func (m *EmbeddedManager) Ping(ctx context.Context) bool {
	return pingAPI(ctx, m.cfg.BaseURL)
}

// Connect 必要时先拉起本机实例，再做认证握手
func (m *EmbeddedManager) Connect(ctx context.Context) (*Client, error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	if !m.Ping(ctx) {
		if err := m.start(ctx); err != nil {
			return nil, fmt.Errorf("start embedded baserow: %w", err)
		}
	}
	client := NewClient(m.cfg)
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// start 通过 docker-compose 拉起本机实例，不等待就绪
func (m *EmbeddedManager) start(ctx context.Context) error {
	if _, err := exec.LookPath("docker"); err != nil {
		return fmt.Errorf("docker not available: %w", err)
	}
	cmd := exec.CommandContext(ctx, "docker-compose", "up", "-d")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("docker-compose up: %v: %s", err, out)
	}
	return nil
}

// pingAPI GET {base}/api/ 短超时探活
func pingAPI(ctx context.Context, baseURL string) bool {
	if baseURL == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
