package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/go-playground/validator/v10"
)

const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	LINE     LINEConfig
	Rules    RulesConfig
	Dispatch DispatchConfig
	Log      LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := resolveAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Addr string
}

// resolveAddr 解析服务器监听地址。
func resolveAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider       string        `env:"AI_PROVIDER" envDefault:"openai" validate:"oneof=openai ark"`
	Model          string        `env:"AI_MODEL" envDefault:"gpt-4.1-mini-2025-04-14"`
	SystemPrompt   string        `env:"AI_SYSTEM_PROMPT" envDefault:"You are a helpful assistant for a student dormitory. Answer questions using the provided rules."`
	Temperature    float32       `env:"AI_TEMPERATURE" envDefault:"0" validate:"gte=0,lte=2"`
	MaxTokens      int           `env:"AI_MAX_TOKENS" envDefault:"1024" validate:"gte=1"`
	MaxAttempts    uint          `env:"AI_MAX_ATTEMPTS" envDefault:"5" validate:"gte=1"`
	RetryBaseDelay time.Duration `env:"AI_RETRY_BASE_DELAY" envDefault:"2s" validate:"gte=0"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	ArkAPIKey    string `env:"ARK_API_KEY"`
	ArkAccessKey string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey string `env:"ARK_SECRET_KEY"`
	ArkModel     string `env:"ARK_MODEL"`
	ArkBaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `env:"ARK_REGION" envDefault:"cn-beijing"`
}

// ArkEnabled 表示是否提供了 Ark 必需的密钥。
func (c AIConfig) ArkEnabled() bool {
	return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
}

// CompletionModel 返回当前提供方实际使用的模型名。
func (c AIConfig) CompletionModel() string {
	if c.Provider == ProviderArk {
		return c.ArkModel
	}
	return c.Model
}

// NewArkChatModel 使用配置创建一个 Ark 模型实例。
func (c AIConfig) NewArkChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.ArkEnabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_MODEL and ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	temperature := c.Temperature
	maxTokens := c.MaxTokens

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.ArkBaseURL,
		Region:      c.ArkRegion,
		APIKey:      c.ArkAPIKey,
		AccessKey:   c.ArkAccessKey,
		SecretKey:   c.ArkSecretKey,
		Model:       c.ArkModel,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}
	return chatModel, nil
}

// LINEConfig 描述 LINE 渠道配置。缺省为空字符串，首次调用时才会失败。
type LINEConfig struct {
	ChannelToken  string `env:"LINE_CHANNEL_ACCESS_TOKEN"`
	ChannelSecret string `env:"LINE_CHANNEL_SECRET"`
	AckMessage    string `env:"LINE_ACK_MESSAGE" envDefault:"AIが起動中です。回答まで少々お待ちください。"`
	ErrorMessage  string `env:"LINE_ERROR_MESSAGE" envDefault:"申し訳ありません、エラーが発生しました。しばらくしてからもう一度お試しください。"`
}

// RulesConfig points at the rules document and the web UI strings.
type RulesConfig struct {
	Path            string `env:"DORM_RULES_PATH" envDefault:"dorm_rules.txt" validate:"required"`
	ChatTitle       string `env:"CHAT_TITLE" envDefault:"NODE GROWTH Dorm Rules Chatbot"`
	InitialQuestion string `env:"CHAT_INITIAL_QUESTION" envDefault:"寮のルールについて質問してください。例: ゴミ出しのルールは？"`
}

// DispatchConfig sizes the background worker pool used by the webhook.
type DispatchConfig struct {
	Workers      int           `env:"DISPATCH_WORKERS" envDefault:"8" validate:"gte=1"`
	QueueSize    int           `env:"DISPATCH_QUEUE_SIZE" envDefault:"64" validate:"gte=1"`
	DrainTimeout time.Duration `env:"DISPATCH_DRAIN_TIMEOUT" envDefault:"90s" validate:"gt=0"`
}

// LogConfig 描述日志级别与输出格式。
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}
