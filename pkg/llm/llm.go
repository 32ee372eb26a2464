package llm

import "context"

// Translator 机器翻译的统一接口，腾讯 TMT 与 LLM 实现均满足
type Translator interface {
	// Translate 将 text 翻译为 target 语言；source 为空或 "auto" 时自动识别
	Translate(ctx context.Context, text, target, source string) (string, error)
}
