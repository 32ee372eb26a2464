package models

// Language 客户端可选的翻译目标语言
type Language struct {
	Name string `json:"name"` // 展示名
	Code string `json:"code"` // 腾讯翻译使用的语言代码
}

// Voice 客户端可选的 TTS 音色
type Voice struct {
	Name string `json:"name"` // 展示名
	Type int64  `json:"type"` // 腾讯语音合成的 VoiceType
}

var languages = []Language{
	{Name: "中文", Code: "zh"},
	{Name: "英语", Code: "en"},
	{Name: "日语", Code: "ja"},
	{Name: "韩语", Code: "ko"},
	{Name: "法语", Code: "fr"},
	{Name: "德语", Code: "de"},
	{Name: "西班牙语", Code: "es"},
}

var voices = []Voice{
	{Name: "智瑜 (情感女声)", Type: 101001},
	{Name: "智聆 (通用女声)", Type: 101002},
	{Name: "智美 (客服女声)", Type: 101003},
	{Name: "智云 (通用男声)", Type: 101004},
	{Name: "WeJack (英文男声)", Type: 101050},
}

// Languages 返回可选语言列表，调用方不应修改返回的切片
func Languages() []Language { return languages }

// Voices 返回可选音色列表
func Voices() []Voice { return voices }

// LangCode 按展示名或语言代码解析语言，未知时返回 false
func LangCode(name string) (string, bool) {
	for _, l := range languages {
		if l.Name == name || l.Code == name {
			return l.Code, true
		}
	}
	return "", false
}

// VoiceType 按展示名解析音色，未知时返回 false
func VoiceType(name string) (int64, bool) {
	for _, v := range voices {
		if v.Name == name {
			return v.Type, true
		}
	}
	return 0, false
}

// VoiceName 按 VoiceType 反查展示名
func VoiceName(voiceType int64) (string, bool) {
	for _, v := range voices {
		if v.Type == voiceType {
			return v.Name, true
		}
	}
	return "", false
}
