package enhancer

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"tradedesk/conf"
	"tradedesk/internal/model"
)

// Annotator ML打分服务的固定能力接口
// 审批前以best-effort方式咨询一次，超时或出错都不阻塞审批
type Annotator interface {
	Enhance(ctx context.Context, sig model.Signal) (*model.Annotation, error)
}

// HTTPEnhancer 通过HTTP调用外部打分服务，超时由配置限定
type HTTPEnhancer struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

func NewHTTPEnhancer(cfg conf.EnhancerConfig) *HTTPEnhancer {
	return &HTTPEnhancer{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (e *HTTPEnhancer) Enhance(ctx context.Context, sig model.Signal) (*model.Annotation, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := json.Marshal(sig)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enhancer returned status %d", resp.StatusCode)
	}

	var ann model.Annotation
	if err := json.NewDecoder(resp.Body).Decode(&ann); err != nil {
		return nil, err
	}
	return &ann, nil
}
