package llm

import (
	"context"
	"fmt"
	"strings"

	"TransLingo/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAITranslator 基于 OpenAI 兼容接口的翻译实现
// （DashScope、LM Studio 等兼容端点均可通过 baseURL 接入）
type OpenAITranslator struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewOpenAITranslator 创建 LLM 翻译器
func NewOpenAITranslator(apiKey, baseURL, model string, logger *logrus.Logger) *OpenAITranslator {
	if logger == nil {
		logger = logrus.New()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Translate 通过一次 chat completion 完成翻译，只返回译文本身
func (t *OpenAITranslator) Translate(ctx context.Context, text, target, source string) (string, error) {
	if source == "" {
		source = "auto"
	}
	sourceHint := "the source language (detect it automatically)"
	if source != "auto" {
		sourceHint = fmt.Sprintf("language %q", source)
	}
	prompt := fmt.Sprintf(
		"Translate the following text from %s into language %q. Reply with the translation only, no explanations.\n\n%s",
		sourceHint, target, text)

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a professional translation engine."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.WrapCode(errors.CodeRemoteService, err, "llm translate failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.WithCode(errors.CodeRemoteService, "llm returned no choices")
	}

	t.logger.WithFields(logrus.Fields{
		"model":  t.model,
		"target": target,
	}).Debug("llm translation finished")

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
