package service

import (
	"bytes"
	"context"
	"course_gen_backend/internal/config"
	"course_gen_backend/internal/util"
	"course_gen_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// 面向用户的交互式请求，失败只重试一次、固定短间隔，避免拖长响应时间
const (
	generationMaxAttempts = 2
	generationRetryDelay  = 500 * time.Millisecond
)

// AIService 调用 OpenAI 兼容的 chat/completions 接口。
// 客户端持有注入的配置，不依赖任何全局状态；
// 配置可随热更新替换，读写用锁隔离。
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateCourseContent 发送提示词并返回模型的原始文本输出。
// 瞬时失败（网络、非200、空响应）重试一次后以
// util.ErrGenerationUnavailable / util.ErrGenerationEmpty 返回。
func (s *AIService) GenerateCourseContent(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= generationMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(generationRetryDelay):
			case <-ctx.Done():
				return "", util.ErrGenerationUnavailable
			}
		}

		raw, err := s.complete(ctx, prompt)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		logger.Log.Warn("course generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}

// UpdateConfig 配置热更新入口，Model/BaseURL/APIKey 可在运行中替换
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) snapshot() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	cfg := s.snapshot()

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{
				Role:    "system",
				Content: "你是一个课程设计专家，按照用户要求的格式输出结构化课程内容。",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: generationTemperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: AI API status %d: %s", util.ErrGenerationUnavailable, resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrGenerationEmpty, err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", util.ErrGenerationUnavailable, result.Error.Message)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", util.ErrGenerationEmpty
	}

	return result.Choices[0].Message.Content, nil
}

// IsGenerationError 判断错误是否属于内容生成阶段，
// 控制器据此对外隐藏原始错误细节
func IsGenerationError(err error) bool {
	return errors.Is(err, util.ErrGenerationUnavailable) ||
		errors.Is(err, util.ErrGenerationEmpty) ||
		errors.Is(err, util.ErrInvalidStructure)
}
