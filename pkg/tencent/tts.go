package tencent

import (
	"context"
	"encoding/base64"

	"TransLingo/pkg/errors"

	"github.com/google/uuid"
)

const (
	ttsService = "tts"
	ttsVersion = "2019-08-23"
)

// TextToVoiceRequest 语音合成请求
type TextToVoiceRequest struct {
	Text      string `json:"Text"`
	SessionId string `json:"SessionId"`
	VoiceType int64  `json:"VoiceType"`
	ModelType int64  `json:"ModelType"`
	Codec     string `json:"Codec"`
}

// TextToVoiceResponse 语音合成响应，Audio 为 base64 编码的音频数据
type TextToVoiceResponse struct {
	Audio     string `json:"Audio"`
	SessionId string `json:"SessionId"`
}

// Synthesize 合成语音，返回 mp3 编码的原始音频字节。
// 不限制输入长度（早期版本截断到 100 字符的行为已移除）。
func (c *Client) Synthesize(ctx context.Context, text string, voiceType int64) ([]byte, error) {
	req := TextToVoiceRequest{
		Text:      text,
		SessionId: uuid.NewString(),
		VoiceType: voiceType,
		ModelType: 1,
		Codec:     "mp3",
	}
	var resp TextToVoiceResponse
	if err := c.do(ctx, ttsService, ttsVersion, "TextToVoice", req, &resp); err != nil {
		return nil, errors.WrapCode(errors.CodeRemoteService, err, "speech synthesis failed")
	}

	audio, err := base64.StdEncoding.DecodeString(resp.Audio)
	if err != nil {
		return nil, errors.WrapCode(errors.CodeRemoteService, err, "failed to decode audio payload")
	}
	return audio, nil
}
