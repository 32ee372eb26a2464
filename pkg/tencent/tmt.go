package tencent

import (
	"context"

	"TransLingo/pkg/errors"
)

const (
	tmtService = "tmt"
	tmtVersion = "2018-03-21"
)

// TextTranslateRequest 文本翻译请求
type TextTranslateRequest struct {
	SourceText string `json:"SourceText"`
	Source     string `json:"Source"`
	Target     string `json:"Target"`
	ProjectId  int64  `json:"ProjectId"`
}

// TextTranslateResponse 文本翻译响应
type TextTranslateResponse struct {
	TargetText string `json:"TargetText"`
	Source     string `json:"Source"`
	Target     string `json:"Target"`
}

// Translate 翻译文本。source 为空时自动识别源语言。
// 单次往返，不分块、不重试；空文本由调用方过滤。
func (c *Client) Translate(ctx context.Context, text, target, source string) (string, error) {
	if source == "" {
		source = "auto"
	}
	req := TextTranslateRequest{
		SourceText: text,
		Source:     source,
		Target:     target,
		ProjectId:  0,
	}
	var resp TextTranslateResponse
	if err := c.do(ctx, tmtService, tmtVersion, "TextTranslate", req, &resp); err != nil {
		return "", errors.WrapCode(errors.CodeRemoteService, err, "translate failed")
	}
	return resp.TargetText, nil
}
