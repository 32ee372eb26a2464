package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	"TransLingo/pkg/logger"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Support 国际化支持结构体
type Support struct {
	bundle *i18n.Bundle

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// New 初始化国际化支持，语言文件内嵌在二进制中
func New(defaultLang string) (*Support, error) {
	tag, err := language.Parse(defaultLang)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"locales/en.json", "locales/zh.json"} {
		buf, err := localeFS.ReadFile(name)
		if err != nil {
			logger.Warn("read locale file failed", zap.String("file", name), zap.Error(err))
			continue
		}
		if _, err := bundle.ParseMessageFileBytes(buf, name); err != nil {
			logger.Warn("parse locale file failed", zap.String("file", name), zap.Error(err))
		}
	}

	return &Support{
		bundle:     bundle,
		localizers: make(map[string]*i18n.Localizer),
	}, nil
}

func (s *Support) localizer(lang string) *i18n.Localizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.localizers[lang]; ok {
		return l
	}
	l := i18n.NewLocalizer(s.bundle, lang)
	s.localizers[lang] = l
	return l
}

// T 获取翻译文本，缺失时返回键名
func (s *Support) T(lang, key string, templateData map[string]interface{}) string {
	translation, err := s.localizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		return key
	}
	return translation
}
